package domain

// Storage persists the catalog. Every call is a full load or a full
// load-modify-rewrite of the backing file; nothing is cached between calls.
type Storage interface {
	// List returns the whole catalog. A missing or unreadable file
	// yields an empty catalog, never an error.
	List() *Catalog

	// Add inserts a record or overwrites the one with the same title
	Add(title string, year int, rating float64, poster string) error

	// Delete removes title. Absent titles are a no-op.
	Delete(title string) error

	// Update rewrites the rating of title. Absent titles are a no-op.
	Update(title string, rating float64) error
}
