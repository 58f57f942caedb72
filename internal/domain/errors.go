package domain

import "errors"

// Sentinel errors for client operations
var (
	// ErrEmptyURL indicates the URL field was blank
	ErrEmptyURL = errors.New("url is empty")

	// ErrInvalidURL indicates the URL could not be parsed
	ErrInvalidURL = errors.New("url is malformed")

	// ErrServerOffline indicates the download service is unreachable
	ErrServerOffline = errors.New("download service is unreachable")

	// ErrMalformedResponse indicates the service answered with a body that is not JSON
	ErrMalformedResponse = errors.New("malformed response from download service")

	// ErrFileNotFound indicates the requested file is not on the service
	ErrFileNotFound = errors.New("file not found")
)
