package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidKey  = errors.New("invalid storage key")
	ErrFileMissing = errors.New("stored file not found")
)

// FileStorage stores opaque blobs under slash-separated keys.
type FileStorage interface {
	// Upload writes the content under key and returns the normalized key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)

	// Open returns ErrFileMissing when nothing is stored under key.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete is idempotent.
	Delete(ctx context.Context, key string) error

	// URL returns the address clients use to fetch key.
	URL(key string) string
}
