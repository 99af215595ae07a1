package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PlaceStore defines single-document persistence operations for places.
type PlaceStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Place, error)
	GetByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]Place, error)
	Update(ctx context.Context, place Place) (Place, error)
}

// TxStore performs the cross-document mutations linking a place and its
// owner's place id list. Each call is a single atomic scope: both writes
// become durable or neither does. Implementations must serialize
// conflicting scopes touching the same owner and retry a bounded number
// of times before failing.
type TxStore interface {
	CreatePlaceWithOwner(ctx context.Context, place Place) (Place, error)
	DeletePlaceWithOwner(ctx context.Context, place Place) error
}

// Coordinates is a geographic point resolved from a street address.
type Coordinates struct {
	Lat float64
	Lng float64
}

// CreatePlaceParams carries the inputs of place creation. Coordinates
// are resolved from Address by the geocoding collaborator.
type CreatePlaceParams struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Address     string
	ImageKey    string
}

// UpdatePlaceParams carries the inputs of a place update. Ownership does
// not change, so only the mutable fields appear.
type UpdatePlaceParams struct {
	OwnerID     uuid.UUID
	PlaceID     uuid.UUID
	Title       string
	Description string
}

// Place represents a stored place. OwnerID is immutable after creation.
type Place struct {
	ID          uuid.UUID
	Title       string
	Description string
	Address     string
	Location    Coordinates
	ImageKey    string
	OwnerID     uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
