package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrEmptyCatalog indicates an operation needs at least one movie
	ErrEmptyCatalog = errors.New("no movies in the database")

	// ErrMissingAPIKey indicates the metadata service key is not configured
	ErrMissingAPIKey = errors.New("metadata API key is not configured")

	// ErrMovieNotFound indicates the metadata service has no match for a title
	ErrMovieNotFound = errors.New("movie not found")

	// ErrTimeout indicates the metadata service did not answer in time
	ErrTimeout = errors.New("metadata request timed out")

	// ErrConnection indicates the metadata service is unreachable
	ErrConnection = errors.New("metadata service is unreachable")

	// ErrUpstream indicates the metadata service returned an error status or message
	ErrUpstream = errors.New("metadata service error")

	// ErrBadResponse indicates the metadata service response could not be decoded
	ErrBadResponse = errors.New("malformed metadata response")
)
