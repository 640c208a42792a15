package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrPersistence indicates that the store rejected or could not complete an operation
	ErrPersistence = errors.New("persistence failure")

	// ErrMissingRelation indicates a referential-integrity gap between stored records
	ErrMissingRelation = errors.New("missing relation")
)

// PersistenceError describes a store failure: a rejected write, a constraint
// violation, a connectivity problem or a timeout.
// Code carries the store-specific condition code when one is known (e.g. a SQLSTATE).
type PersistenceError struct {
	Op   string
	Code string
	Err  error
}

// Error returns a formatted error message for the persistence error.
func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: persistence failure (code %s): %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: persistence failure: %v", e.Op, e.Err)
}

// Unwrap returns the underlying store error.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPersistence) match any PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError wraps err as a PersistenceError for operation op.
// A nil err yields nil.
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// MissingRelationError reports an article whose author reference cannot be resolved.
type MissingRelationError struct {
	ArticleID int64
	AuthorID  int64
}

// Error returns a formatted error message for the integrity fault.
func (e *MissingRelationError) Error() string {
	return fmt.Sprintf("article %d references missing author %d", e.ArticleID, e.AuthorID)
}

// Is makes errors.Is(err, ErrMissingRelation) match any MissingRelationError.
func (e *MissingRelationError) Is(target error) bool {
	return target == ErrMissingRelation
}
