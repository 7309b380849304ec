package storage

import (
	"errors"
	"fmt"
)

// NotFoundError indicates a lookup for a document that does not exist.
type NotFoundError struct {
	Collection string
	PK         string
}

func (e *NotFoundError) Error() string {
	if e.PK == "" {
		return fmt.Sprintf("storage: no document matched in %q", e.Collection)
	}
	return fmt.Sprintf("storage: document %q not found in %q", e.PK, e.Collection)
}

// Code identifies the error class for logging and summaries.
func (e *NotFoundError) Code() string { return "not_found" }

// StoreUnavailableError wraps backend failures such as lost connections or
// malformed stored data. It always carries the underlying cause.
type StoreUnavailableError struct {
	Op  string
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// Code identifies the error class for logging and summaries.
func (e *StoreUnavailableError) Code() string { return "store_unavailable" }

// IsNotFound reports whether err is a document-not-found error.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func unavailable(op string, err error) error {
	return &StoreUnavailableError{Op: op, Err: err}
}
