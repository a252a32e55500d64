package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrProvider    = errors.New("random guest provider failed")
	ErrPersistence = errors.New("persistence failed")
	ErrNotFound    = errors.New("guest not found")
)

// ValidationError is returned for bad user input; the input can be corrected and retried
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ProviderError is returned when the random guest service fails or sends malformed data
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("random guest %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func (e *ProviderError) Is(target error) bool {
	return target == ErrProvider
}

// PersistenceFault is returned when the key-value store cannot be read or written
type PersistenceFault struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceFault) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceFault) Unwrap() error {
	return e.Err
}

func (e *PersistenceFault) Is(target error) bool {
	return target == ErrPersistence
}

// NotFoundError is returned when no guest has the given ID
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("guest %q not found", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
