package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: run", ErrNotFound)

	// Input errors
	ErrFileNotFound   = errors.New("input file not found")
	ErrFileUnreadable = errors.New("input file unreadable")
	ErrInvalidFormat  = errors.New("invalid file format")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewUnreadableError(path string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrFileUnreadable, path, cause)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsUnreadableError(err error) bool {
	return errors.Is(err, ErrFileUnreadable)
}
