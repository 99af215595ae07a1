package model

import "github.com/google/uuid"

// Identity is the authenticated subject extracted from a verified token.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// TokenManager issues and verifies bearer tokens. Parse is pure: it
// checks the signature and expiry without touching storage.
type TokenManager interface {
	Generate(userID uuid.UUID, email string) (string, error)
	Parse(token string) (Identity, error)
}
