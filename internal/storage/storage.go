package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var ErrObjectNotFound = errors.New("storage: object not found")

// Storage abstracts where uploaded images live. The local implementation
// serves development, the S3 one is meant for production.
type Storage interface {
	Save(ctx context.Context, key string, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	// URL returns the public address the object is reachable at.
	URL(key string) string
}

type Config struct {
	Type     string // "local" or "s3"
	BasePath string
	BaseURL  string
	S3       S3Config
}

func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg.BasePath, cfg.BaseURL)
	case "s3":
		return NewS3Storage(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
