package handler

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/placemark/placemark-server/internal/model"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, params model.RegisterParams) (model.AuthResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.AuthResult), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, email string, password string) (model.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.AuthResult), args.Error(1)
}

func (m *MockAuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

type MockPlaceService struct {
	mock.Mock
}

func (m *MockPlaceService) CreatePlace(ctx context.Context, params model.CreatePlaceParams) (model.Place, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Place), args.Error(1)
}

func (m *MockPlaceService) UpdatePlace(ctx context.Context, params model.UpdatePlaceParams) (model.Place, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Place), args.Error(1)
}

func (m *MockPlaceService) DeletePlace(ctx context.Context, ownerID uuid.UUID, placeID uuid.UUID) error {
	args := m.Called(ctx, ownerID, placeID)
	return args.Error(0)
}

func (m *MockPlaceService) GetPlace(ctx context.Context, placeID uuid.UUID) (model.Place, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(model.Place), args.Error(1)
}

func (m *MockPlaceService) GetPlacesByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Place, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]model.Place), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
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
