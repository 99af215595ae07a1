package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/placemark/placemark-server/internal/apperror"
	"github.com/placemark/placemark-server/internal/logger"
	"github.com/placemark/placemark-server/internal/model"
)

// Place implements place mutations while keeping the bidirectional link
// between a place and its owner's place list intact: a place exists if
// and only if its id appears in the owner's list. This service is the
// sole writer of that link.
type Place struct {
	placeStore model.PlaceStore
	txStore    model.TxStore
	userStore  model.UserStore
	geocoder   model.Geocoder
	storage    model.Storage
	logger     *logger.Logger
}

func NewPlace(
	placeStore model.PlaceStore,
	txStore model.TxStore,
	userStore model.UserStore,
	geocoder model.Geocoder,
	storage model.Storage,
	logger *logger.Logger,
) *Place {
	return &Place{
		placeStore: placeStore,
		txStore:    txStore,
		userStore:  userStore,
		geocoder:   geocoder,
		storage:    storage,
		logger:     logger,
	}
}

// CreatePlace geocodes the address, then inserts the place and appends
// its id to the owner's list in one atomic scope. A geocoder failure
// propagates before any state is written.
func (s *Place) CreatePlace(ctx context.Context, params model.CreatePlaceParams) (model.Place, error) {
	s.logger.Debug("Place service: creating place",
		"owner_id", params.OwnerID,
		"title", params.Title)

	coordinates, err := s.geocoder.Resolve(ctx, params.Address)
	if err != nil {
		s.logger.Error("Place service: failed to geocode address",
			"address", params.Address,
			"error", err.Error())
		return model.Place{}, err
	}

	_, err = s.userStore.GetByID(ctx, params.OwnerID)
	if errors.Is(err, apperror.ErrNotFound) {
		return model.Place{}, apperror.NewNotFound("could not find user for provided id")
	}
	if err != nil {
		return model.Place{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	place := model.Place{
		ID:          uuid.New(),
		Title:       params.Title,
		Description: params.Description,
		Address:     params.Address,
		Location:    coordinates,
		ImageKey:    params.ImageKey,
		OwnerID:     params.OwnerID,
	}

	savedPlace, err := s.txStore.CreatePlaceWithOwner(ctx, place)
	if errors.Is(err, apperror.ErrNotFound) {
		return model.Place{}, apperror.NewNotFound("could not find user for provided id")
	}
	if err != nil {
		s.logger.Error("Place service: failed to commit place creation",
			"owner_id", params.OwnerID,
			"error", err.Error())
		return model.Place{}, apperror.NewInternal(err)
	}

	s.logger.Info("Place service: place created",
		"place_id", savedPlace.ID,
		"owner_id", savedPlace.OwnerID)

	return savedPlace, nil
}

// UpdatePlace mutates title and description of an owned place. The
// ownership check runs strictly before any field changes.
func (s *Place) UpdatePlace(ctx context.Context, params model.UpdatePlaceParams) (model.Place, error) {
	place, err := s.placeStore.GetByID(ctx, params.PlaceID)
	if errors.Is(err, apperror.ErrNotFound) {
		return model.Place{}, apperror.NewNotFound("could not find place for provided id")
	}
	if err != nil {
		return model.Place{}, fmt.Errorf("failed to get place by id: %w", err)
	}

	if place.OwnerID != params.OwnerID {
		return model.Place{}, apperror.NewForbidden("you are not allowed to edit this place")
	}

	place.Title = params.Title
	place.Description = params.Description

	savedPlace, err := s.placeStore.Update(ctx, place)
	if err != nil {
		s.logger.Error("Place service: failed to update place",
			"place_id", params.PlaceID,
			"error", err.Error())
		return model.Place{}, fmt.Errorf("failed to update place: %w", err)
	}

	return savedPlace, nil
}

// DeletePlace removes the place and its id from the owner's list in one
// atomic scope, then releases the stored image. Media cleanup is
// best-effort and runs only after the commit; its failure is logged,
// never propagated.
func (s *Place) DeletePlace(ctx context.Context, ownerID uuid.UUID, placeID uuid.UUID) error {
	place, err := s.placeStore.GetByID(ctx, placeID)
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NewNotFound("could not find place for provided id")
	}
	if err != nil {
		return fmt.Errorf("failed to get place by id: %w", err)
	}

	if place.OwnerID != ownerID {
		return apperror.NewForbidden("you are not allowed to delete this place")
	}

	err = s.txStore.DeletePlaceWithOwner(ctx, place)
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.NewNotFound("could not find place for provided id")
	}
	if err != nil {
		s.logger.Error("Place service: failed to commit place deletion",
			"place_id", placeID,
			"error", err.Error())
		return apperror.NewInternal(err)
	}

	if place.ImageKey != "" {
		if err := s.storage.Delete(ctx, place.ImageKey); err != nil {
			s.logger.Error("Place service: failed to delete place image",
				"place_id", placeID,
				"image_key", place.ImageKey,
				"error", err.Error())
		}
	}

	s.logger.Info("Place service: place deleted",
		"place_id", placeID,
		"owner_id", ownerID)

	return nil
}

// GetPlace returns a single place by id.
func (s *Place) GetPlace(ctx context.Context, placeID uuid.UUID) (model.Place, error) {
	place, err := s.placeStore.GetByID(ctx, placeID)
	if errors.Is(err, apperror.ErrNotFound) {
		return model.Place{}, apperror.NewNotFound("could not find place for provided id")
	}
	if err != nil {
		return model.Place{}, fmt.Errorf("failed to get place by id: %w", err)
	}

	return place, nil
}

// GetPlacesByOwner returns all places of the given user in creation
// order. The user must exist; an empty list is not an error.
func (s *Place) GetPlacesByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Place, error) {
	_, err := s.userStore.GetByID(ctx, ownerID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("could not find user for provided id")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	places, err := s.placeStore.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get places by owner id: %w", err)
	}

	return places, nil
}
