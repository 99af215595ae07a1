package model

import (
	"context"
	"io"
)

// Storage is the media storage collaborator. Keys are opaque handles
// recorded on users and places.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
