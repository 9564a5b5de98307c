// Package storage provides the persistence media the settings document is
// written to: a JSON file on disk or a single Redis key.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotExist is returned when the medium holds no document yet
	ErrNotExist = errors.New("settings document does not exist")
	// ErrUnknownType is returned for an unsupported storage type
	ErrUnknownType = errors.New("unknown storage type")
	// ErrFilePathRequired is returned when file storage has no path
	ErrFilePathRequired = errors.New("file storage path is required")
)

// Medium is a readable/writable byte store holding one document.
type Medium interface {
	// Read returns the stored bytes, or an error wrapping ErrNotExist
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored bytes
	Write(ctx context.Context, data []byte) error
	// Describe returns a human-readable location for logging
	Describe() string
}
