package domain

import "context"

// MovieFetcher looks up movie metadata from an external service
type MovieFetcher interface {
	// Fetch returns the best match for title. Failures are reported as
	// one of the metadata sentinel errors (ErrMovieNotFound, ErrTimeout, ...).
	Fetch(ctx context.Context, title string) (Movie, error)
}
