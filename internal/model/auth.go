package model

import "github.com/google/uuid"

// RegisterParams carries the inputs of user registration. String fields
// are validated at the transport boundary before the service runs.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	ImageKey string
}

// AuthResult is returned by successful registration or authentication.
type AuthResult struct {
	UserID uuid.UUID
	Email  string
	Token  string
}
