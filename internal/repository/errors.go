package repository

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrFilterRequired = errors.New("at least 1 filter must be provided for deleting")

// ValidationError rejects a call before it reaches the store.
type ValidationError struct {
	Entity string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Entity, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// StorageError carries the driver error of a failed store call. The caller's
// transaction scope is responsible for rolling back.
type StorageError struct {
	Op     string
	Entity string
	Err    error
}

func (e *StorageError) Error() string {
	return e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func newStorageError(op, entity string, err error) error {
	return &StorageError{
		Op:     op,
		Entity: entity,
		Err:    errors.Wrapf(err, "%s %s", op, entity),
	}
}
