// Package storage persists exported outline documents. Local disk is
// the development backend; S3 serves production.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// Storage stores rendered outline exports
type Storage interface {
	// Save writes an export document and returns its storage path
	Save(ctx context.Context, exportID uuid.UUID, format string, data io.Reader) (string, error)

	// Open retrieves an export by storage path
	Open(ctx context.Context, storagePath string) (io.ReadCloser, error)

	// Delete removes an export by storage path
	Delete(ctx context.Context, storagePath string) error
}

// BackendType selects the storage backend
type BackendType string

const (
	BackendLocal BackendType = "local"
	BackendS3    BackendType = "s3"
)

// Config holds storage backend configuration
type Config struct {
	Type         BackendType
	LocalPath    string // for local storage
	S3Bucket     string // for S3 storage
	S3Region     string
	AWSAccessKey string
	AWSSecretKey string
}

// New creates a storage backend from configuration
func New(cfg Config) (Storage, error) {
	switch cfg.Type {
	case BackendLocal:
		return NewLocalStorage(cfg.LocalPath)
	case BackendS3:
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// NewFromEnv creates a storage backend from environment variables
func NewFromEnv() (Storage, error) {
	backend := os.Getenv("EXPORT_STORAGE_TYPE")
	if backend == "" {
		backend = "local" // default for development
	}

	switch BackendType(backend) {
	case BackendLocal:
		localPath := os.Getenv("EXPORT_LOCAL_PATH")
		if localPath == "" {
			localPath = "./storage/exports"
		}
		return NewLocalStorage(localPath)

	case BackendS3:
		cfg := Config{
			Type:         BackendS3,
			S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
			S3Region:     os.Getenv("AWS_REGION"),
			AWSAccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		}
		if cfg.S3Region == "" {
			cfg.S3Region = "ap-northeast-1"
		}
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Storage(cfg)

	default:
		return nil, fmt.Errorf("unknown storage type: %s", backend)
	}
}

// exportPath shards exports by the first byte of the ID so a single
// directory never grows unbounded.
func exportPath(exportID uuid.UUID, format string) string {
	id := exportID.String()
	return fmt.Sprintf("exports/%s/%s.%s", id[:2], id, extensionFor(format))
}

func extensionFor(format string) string {
	switch format {
	case "markdown":
		return "md"
	case "json":
		return "json"
	default:
		return "txt"
	}
}
