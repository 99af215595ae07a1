//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/model"
	repo "github.com/placemark/placemark-server/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "placemark_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/placemark_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func newUser(email string) model.User {
	return model.User{
		ID:           uuid.New(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: []byte("$2a$10$abcdefghijklmnopqrstuv"),
		ImageKey:     "avatar.png",
		PlaceIDs:     []uuid.UUID{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func newPlace(ownerID uuid.UUID, title string) model.Place {
	return model.Place{
		ID:          uuid.New(),
		Title:       title,
		Description: "A place worth remembering",
		Address:     "20 W 34th St, New York, NY 10001",
		Location:    model.Coordinates{Lat: 40.7484, Lng: -73.9857},
		ImageKey:    "photo.png",
		OwnerID:     ownerID,
	}
}

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)

	u := newUser("user@example.com")
	saved, err := ur.Create(ctx, u)
	require.NoError(t, err)
	require.Equal(t, u.ID, saved.ID)
	require.Equal(t, u.PasswordHash, saved.PasswordHash)

	byEmail, err := ur.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)
	require.Empty(t, byEmail.PlaceIDs)

	byID, err := ur.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)

	_, err = ur.GetByEmail(ctx, "absent@example.com")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = ur.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, apperror.ErrNotFound)

	list, err := ur.List(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(list), 1)
}

func TestPlaceRepository_LinkedLifecycle(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	pr := repo.NewPlaceRepository(conn)

	owner, err := ur.Create(ctx, newUser("owner@example.com"))
	require.NoError(t, err)

	first, err := pr.CreatePlaceWithOwner(ctx, newPlace(owner.ID, "First place"))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	second, err := pr.CreatePlaceWithOwner(ctx, newPlace(owner.ID, "Second place"))
	require.NoError(t, err)

	// Both sides of the link must agree, in creation order.
	got, err := ur.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{first.ID, second.ID}, got.PlaceIDs)

	places, err := pr.GetByOwnerID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, places, 2)
	require.Equal(t, first.ID, places[0].ID)
	require.Equal(t, second.ID, places[1].ID)

	updated, err := pr.Update(ctx, model.Place{ID: first.ID, Title: "Renamed", Description: "Updated description"})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, first.Address, updated.Address)

	require.NoError(t, pr.DeletePlaceWithOwner(ctx, first))

	_, err = pr.GetByID(ctx, first.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	got, err = ur.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{second.ID}, got.PlaceIDs)

	err = pr.DeletePlaceWithOwner(ctx, newPlace(owner.ID, "never created"))
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPlaceRepository_CreateRollsBackOnUnknownOwner(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	pr := repo.NewPlaceRepository(conn)

	place := newPlace(uuid.New(), "Orphan place")
	_, err = pr.CreatePlaceWithOwner(ctx, place)
	require.ErrorIs(t, err, apperror.ErrNotFound)

	// The insert must not survive the failed owner update.
	_, err = pr.GetByID(ctx, place.ID)
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestPlaceRepository_ConcurrentCreatesSerialize(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ur := repo.NewUserRepository(conn)
	pr := repo.NewPlaceRepository(conn)

	owner, err := ur.Create(ctx, newUser("concurrent@example.com"))
	require.NoError(t, err)

	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = pr.CreatePlaceWithOwner(ctx, newPlace(owner.ID, fmt.Sprintf("Place %d", i)))
		}(i)
	}
	wg.Wait()

	// Conflicting scopes may exhaust their retry budget; every scope that
	// committed must appear on both sides of the link, and no partial
	// writes may leak from the ones that did not.
	succeeded := 0
	for i := 0; i < workers; i++ {
		if errs[i] == nil {
			succeeded++
		}
	}
	require.GreaterOrEqual(t, succeeded, 1)

	got, err := ur.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.PlaceIDs, succeeded)

	places, err := pr.GetByOwnerID(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, places, succeeded)

	for i, place := range places {
		require.Equal(t, place.ID, got.PlaceIDs[i])
	}
}
