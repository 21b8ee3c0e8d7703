package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned when no object exists under a key
var ErrNotFound = errors.New("object not found")

// Storage is a flat key/object store
type Storage interface {
	// Put stores data under key, replacing any previous object
	Put(ctx context.Context, key string, data []byte, contentType string) error

	// Get returns the object under key or ErrNotFound
	Get(ctx context.Context, key string) ([]byte, error)
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeNone  StorageType = "none"
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// StorageConfig holds configuration for storage
type StorageConfig struct {
	Type         StorageType
	LocalPath    string // For local storage
	S3Bucket     string // For S3 storage
	S3Region     string // For S3 storage
	AWSAccessKey string
	AWSSecretKey string
}

// NewStorage creates a storage backend; it returns nil for StorageTypeNone
func NewStorage(ctx context.Context, cfg StorageConfig) (Storage, error) {
	switch cfg.Type {
	case StorageTypeNone, "":
		return nil, nil
	case StorageTypeLocal:
		return NewLocalStorage(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET is required for S3 storage")
		}
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
