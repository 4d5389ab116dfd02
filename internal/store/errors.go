package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// StorageError wraps an I/O failure from either backend variant with enough
// context for callers to log without inspecting backend internals.
type StorageError struct {
	Backend    string
	Collection string
	Op         string
	Err        error
}

func (err *StorageError) Error() string {
	return fmt.Sprintf("%s %s %s: %v", err.Backend, err.Op, err.Collection, err.Err)
}

func (err *StorageError) Unwrap() error {
	return err.Err
}

func storageErr(backend string, op string, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Backend: backend, Collection: collection, Op: op, Err: err}
}
