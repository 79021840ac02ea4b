// Package common defines shared constants and sentinel errors used across
// classkeeper layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors surfaced to clients as 404.
	ErrClassNotFound = errors.New("specified class id not found")
	ErrFileNotFound  = errors.New("specified file id not found")

	// Repository-level errors surfaced to clients as 500.
	ErrConnection        = errors.New("database connection error")
	ErrSerializeFailed   = errors.New("failed to serialize document")
	ErrDeserializeFailed = errors.New("failed to deserialize document")
	ErrAlreadyExists     = errors.New("class id or pass phrase already exists")

	// Request parsing errors.
	ErrInvalidID    = errors.New("invalid identifier")
	ErrInvalidInput = errors.New("invalid input")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Wiring errors.
	ErrUnknownBackend  = errors.New("unknown storage backend")
	ErrUploadsDisabled = errors.New("upload urls are not configured")
)

// IsNotFound reports whether err is one of the client-facing not-found errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrClassNotFound) || errors.Is(err, ErrFileNotFound)
}
