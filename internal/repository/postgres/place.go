package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/model"
)

var (
	_ model.PlaceStore = (*PlaceRepository)(nil)
	_ model.TxStore    = (*PlaceRepository)(nil)
)

type PlaceRepository struct {
	db *Connection
}

func NewPlaceRepository(db *Connection) *PlaceRepository {
	return &PlaceRepository{
		db: db,
	}
}

func (r *PlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Place, error) {
	query := `SELECT id, title, description, address, lat, lng, image_key, owner_id, created_at, updated_at
			  FROM places WHERE id = $1`

	var place model.Place
	err := r.db.QueryRow(ctx, query, id).Scan(
		&place.ID, &place.Title, &place.Description, &place.Address,
		&place.Location.Lat, &place.Location.Lng, &place.ImageKey, &place.OwnerID,
		&place.CreatedAt, &place.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Place{}, apperror.ErrNotFound
		}
		return model.Place{}, fmt.Errorf("failed to get place by id: %w", err)
	}

	return place, nil
}

func (r *PlaceRepository) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Place, error) {
	query := `SELECT id, title, description, address, lat, lng, image_key, owner_id, created_at, updated_at
			  FROM places WHERE owner_id = $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get places by owner id: %w", err)
	}
	defer rows.Close()

	var places []model.Place
	for rows.Next() {
		var place model.Place
		err := rows.Scan(
			&place.ID, &place.Title, &place.Description, &place.Address,
			&place.Location.Lat, &place.Location.Lng, &place.ImageKey, &place.OwnerID,
			&place.CreatedAt, &place.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read places: %w", err)
	}

	return places, nil
}

func (r *PlaceRepository) Update(ctx context.Context, place model.Place) (model.Place, error) {
	query := `UPDATE places SET title = $2, description = $3, updated_at = NOW()
			  WHERE id = $1
			  RETURNING id, title, description, address, lat, lng, image_key, owner_id, created_at, updated_at`

	var savedPlace model.Place
	err := r.db.QueryRow(ctx, query, place.ID, place.Title, place.Description).Scan(
		&savedPlace.ID, &savedPlace.Title, &savedPlace.Description, &savedPlace.Address,
		&savedPlace.Location.Lat, &savedPlace.Location.Lng, &savedPlace.ImageKey, &savedPlace.OwnerID,
		&savedPlace.CreatedAt, &savedPlace.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Place{}, apperror.ErrNotFound
		}
		return model.Place{}, fmt.Errorf("failed to update place: %w", err)
	}

	return savedPlace, nil
}

// CreatePlaceWithOwner inserts the place and appends its id to the
// owner's place list as one atomic scope. Neither write is observable
// unless both commit.
func (r *PlaceRepository) CreatePlaceWithOwner(ctx context.Context, place model.Place) (model.Place, error) {
	var savedPlace model.Place

	err := r.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		insertQuery := `INSERT INTO places (id, title, description, address, lat, lng, image_key, owner_id)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
						RETURNING id, title, description, address, lat, lng, image_key, owner_id, created_at, updated_at`

		err := tx.QueryRow(ctx, insertQuery,
			place.ID, place.Title, place.Description, place.Address,
			place.Location.Lat, place.Location.Lng, place.ImageKey, place.OwnerID,
		).Scan(
			&savedPlace.ID, &savedPlace.Title, &savedPlace.Description, &savedPlace.Address,
			&savedPlace.Location.Lat, &savedPlace.Location.Lng, &savedPlace.ImageKey, &savedPlace.OwnerID,
			&savedPlace.CreatedAt, &savedPlace.UpdatedAt,
		)
		if err != nil {
			// An unknown owner trips the foreign key before the list update runs.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return apperror.ErrNotFound
			}
			return fmt.Errorf("failed to insert place: %w", err)
		}

		appendQuery := `UPDATE users SET place_ids = array_append(place_ids, $1), updated_at = NOW()
						WHERE id = $2`

		cmd, err := tx.Exec(ctx, appendQuery, place.ID, place.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to append place to owner: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return apperror.ErrNotFound
		}

		return nil
	})
	if err != nil {
		return model.Place{}, err
	}

	return savedPlace, nil
}

// DeletePlaceWithOwner removes the place and its id from the owner's
// place list as one atomic scope.
func (r *PlaceRepository) DeletePlaceWithOwner(ctx context.Context, place model.Place) error {
	return r.inTx(ctx, func(ctx context.Context, tx pgx.Tx) error {
		deleteQuery := `DELETE FROM places WHERE id = $1`

		cmd, err := tx.Exec(ctx, deleteQuery, place.ID)
		if err != nil {
			return fmt.Errorf("failed to delete place: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return apperror.ErrNotFound
		}

		removeQuery := `UPDATE users SET place_ids = array_remove(place_ids, $1), updated_at = NOW()
						WHERE id = $2`

		cmd, err = tx.Exec(ctx, removeQuery, place.ID, place.OwnerID)
		if err != nil {
			return fmt.Errorf("failed to remove place from owner: %w", err)
		}
		if cmd.RowsAffected() == 0 {
			return apperror.ErrNotFound
		}

		return nil
	})
}
