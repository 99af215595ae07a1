package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "validation error",
			err:      NewValidation("title is required"),
			expected: KindValidation,
		},
		{
			name:     "conflict error",
			err:      NewEmailTaken("user@example.com"),
			expected: KindConflict,
		},
		{
			name:     "not found error",
			err:      NewNotFound("place not found"),
			expected: KindNotFound,
		},
		{
			name:     "forbidden error",
			err:      NewForbidden("not allowed to edit place"),
			expected: KindForbidden,
		},
		{
			name:     "unauthorized error",
			err:      NewInvalidCredentials(),
			expected: KindUnauthorized,
		},
		{
			name:     "geocode error",
			err:      NewGeocodeFailed("20 W 34th St", errors.New("timeout")),
			expected: KindGeocodeFailed,
		},
		{
			name:     "wrapped error keeps its kind",
			err:      fmt.Errorf("create place: %w", NewNotFound("user not found")),
			expected: KindNotFound,
		},
		{
			name:     "plain error defaults to internal",
			err:      errors.New("connection refused"),
			expected: KindInternal,
		},
		{
			name:     "nil error defaults to internal",
			err:      nil,
			expected: KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestMessageOf(t *testing.T) {
	t.Run("carries the caller-facing message", func(t *testing.T) {
		err := NewValidation("description must be at least 5 characters")
		assert.Equal(t, "description must be at least 5 characters", MessageOf(err))
	})

	t.Run("hides the cause", func(t *testing.T) {
		err := NewInternal(errors.New("pq: connection reset by peer"))
		assert.Equal(t, "internal server error", MessageOf(err))
		assert.NotContains(t, MessageOf(err), "connection reset")
	})

	t.Run("plain error gets a generic message", func(t *testing.T) {
		err := errors.New("pq: duplicate key value")
		assert.Equal(t, "internal server error", MessageOf(err))
	})
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := NewGeocodeFailed("Empire State Building", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "i/o timeout")
}

func TestNewInvalidCredentials_Stable(t *testing.T) {
	a := NewInvalidCredentials()
	b := NewInvalidCredentials()

	assert.Equal(t, a.Kind, b.Kind)
	assert.Equal(t, a.Message, b.Message)
}
