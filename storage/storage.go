// Package storage holds the byte-level backends that files are written to. Keys
// are generated by the caller and never derived from user-supplied names.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Viniciustertuliano/photovault/config"
)

// ErrObjectNotFound is returned when a key has no backing object.
var ErrObjectNotFound = errors.New("storage: object not found")

var ErrInvalidKey = errors.New("storage: invalid key")

type Backend interface {
	Name() string
	// EnsureRoot creates the root directory or bucket. It is safe to call repeatedly.
	EnsureRoot(ctx context.Context) error
	// Put writes r under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes key. A missing object yields ErrObjectNotFound.
	Delete(ctx context.Context, key string) error
}

// New builds the backend selected by cfg.Storage.Backend.
func New(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case "", "local":
		return NewLocalBackend(cfg.Storage.BasePath)
	case "minio":
		return NewMinioBackend(cfg.MinIO)
	case "s3":
		return NewS3Backend(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
