package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrInvalidPath  = errors.New("invalid file path")
)

// FileStorage is the read side of the asset store holding branding files.
type FileStorage interface {
	// Download opens a file for streaming
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// ReadFile returns the whole file, limited to maxBytes when positive
	ReadFile(ctx context.Context, path string, maxBytes int64) ([]byte, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}
