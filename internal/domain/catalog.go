package domain

import "context"

// MovieCatalog is the read side of the movie catalog API.
type MovieCatalog interface {
	// Discover lists movies sorted by descending popularity.
	Discover(ctx context.Context) ([]Movie, error)

	// Search lists movies matching query.
	Search(ctx context.Context, query string) ([]Movie, error)
}
