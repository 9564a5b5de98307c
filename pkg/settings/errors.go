package settings

import "errors"

// Document store errors
var (
	// ErrReadFailure is returned when the persistence medium cannot be read or holds malformed content
	ErrReadFailure = errors.New("failed to read settings document")
	// ErrWriteFailure is returned when the persistence medium rejects a save
	ErrWriteFailure = errors.New("failed to write settings document")
	// ErrInvalidDocument is returned when a document or patch cannot be decoded
	ErrInvalidDocument = errors.New("invalid settings document")
)
