package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
	List(ctx context.Context) ([]User, error)
}

// User represents a stored user together with the ordered list of
// place ids it owns. PlaceIDs is maintained exclusively by the place
// service's atomic scopes; order is creation order.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash []byte
	ImageKey     string
	PlaceIDs     []uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
