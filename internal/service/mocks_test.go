package service

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/placemark/placemark-server/internal/model"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

// MockPlaceStore mocks the PlaceStore interface
type MockPlaceStore struct {
	mock.Mock
}

func (m *MockPlaceStore) GetByID(ctx context.Context, id uuid.UUID) (model.Place, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Place), args.Error(1)
}

func (m *MockPlaceStore) GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]model.Place, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Place), args.Error(1)
}

func (m *MockPlaceStore) Update(ctx context.Context, place model.Place) (model.Place, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(model.Place), args.Error(1)
}

// MockTxStore mocks the TxStore interface
type MockTxStore struct {
	mock.Mock
}

func (m *MockTxStore) CreatePlaceWithOwner(ctx context.Context, place model.Place) (model.Place, error) {
	args := m.Called(ctx, place)
	return args.Get(0).(model.Place), args.Error(1)
}

func (m *MockTxStore) DeletePlaceWithOwner(ctx context.Context, place model.Place) error {
	args := m.Called(ctx, place)
	return args.Error(0)
}

// MockGeocoder mocks the Geocoder interface
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, address string) (model.Coordinates, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(model.Coordinates), args.Error(1)
}

// MockStorage mocks the Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockTokenManager mocks the TokenManager interface
type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) Generate(userID uuid.UUID, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenManager) Parse(token string) (model.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(model.Identity), args.Error(1)
}
