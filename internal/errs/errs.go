// Package errs defines the error types shared across layers.
//
// HTTPError is the client-facing error shape written by the global error
// handler. The sentinel errors are returned by the storage layer and matched
// with errors.Is by the service layer.
package errs

import "errors"

var (
	// ErrNotFound reports that no row matched the requested identifier.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument reports arguments rejected before any query runs,
	// e.g. a negative offset or a non-positive page size.
	ErrInvalidArgument = errors.New("invalid argument")
)
