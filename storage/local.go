package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalStorage keeps exports on the local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a local export store rooted at basePath
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	return &LocalStorage{basePath: basePath}, nil
}

// Save writes an export document to disk
func (s *LocalStorage) Save(ctx context.Context, exportID uuid.UUID, format string, data io.Reader) (string, error) {
	storagePath := exportPath(exportID, format)
	fullPath := filepath.Join(s.basePath, storagePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, data); err != nil {
		os.Remove(fullPath) // clean up partial writes
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return storagePath, nil
}

// Open retrieves an export document from disk
func (s *LocalStorage) Open(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, storagePath)

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("export not found: %s", storagePath)
		}
		return nil, fmt.Errorf("failed to open export: %w", err)
	}

	return file, nil
}

// Delete removes an export document from disk
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	fullPath := filepath.Join(s.basePath, storagePath)

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete export: %w", err)
	}

	return nil
}
