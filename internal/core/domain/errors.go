package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for listing lookups and ownership checks.
var (
	// ErrNotFound means the referenced listing does not exist.
	ErrNotFound = errors.New("listing not found")

	// ErrForbidden means the requester is not the owner of the listing.
	// Deliberately distinguishable from ErrNotFound: a 403 tells the
	// caller the listing exists, and the accepted existence disclosure
	// buys a clearer client error.
	ErrForbidden = errors.New("requester is not the owner")
)

// ValidationError reports malformed input. Always recoverable by the caller
// correcting the request; never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// StorageError wraps a persistence failure. Fatal for the current call;
// surfaced to the caller as a generic failure with no automatic retry.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
