package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrNetwork is returned when a request to the posts source could not be
	// completed at the transport level.
	ErrNetwork = errors.New("network failure")

	// ErrUnexpectedStatus is returned when the posts source answers with a
	// non-2xx status code.
	ErrUnexpectedStatus = errors.New("unexpected response status")

	// ErrDecode is returned when a response body is not the expected JSON.
	ErrDecode = errors.New("malformed response body")

	// ErrNotFound is returned when a requested post does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when an entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrWorkerFailed is returned when an offloaded computation reports an error.
	ErrWorkerFailed = errors.New("worker computation failed")
)
