package domain

import "math"

// FallbackYear is used when a release year cannot be determined
const FallbackYear = 0

// Rating bounds (inclusive)
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Movie is a single catalog record, keyed by Title
type Movie struct {
	Title  string
	Year   int
	Rating float64 // 0-10 scale
	Poster string  // Poster image URL, empty when absent
}

// HasPoster returns true if a poster URL is set
func (m Movie) HasPoster() bool {
	return m.Poster != ""
}

// ValidRating reports whether r lies within [MinRating, MaxRating].
// NaN is never valid.
func ValidRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}

// ClampRating forces r into [MinRating, MaxRating]. NaN becomes MinRating.
func ClampRating(r float64) float64 {
	if math.IsNaN(r) {
		return MinRating
	}
	return math.Max(MinRating, math.Min(MaxRating, r))
}

// Catalog maps titles to movies and remembers insertion order.
// Iteration always follows the order records were loaded or added,
// so "first encountered" tie-breaks are stable for a given file.
type Catalog struct {
	order  []string
	movies map[string]Movie
}

// NewCatalog returns an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{movies: make(map[string]Movie)}
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.order)
}

// IsEmpty returns true if the catalog has no records
func (c *Catalog) IsEmpty() bool {
	return c.Len() == 0
}

// Has returns true if title is present
func (c *Catalog) Has(title string) bool {
	_, ok := c.movies[title]
	return ok
}

// Get returns the record for title
func (c *Catalog) Get(title string) (Movie, bool) {
	m, ok := c.movies[title]
	return m, ok
}

// Put inserts m or overwrites the existing record with the same title.
// Overwrites keep the original position.
func (c *Catalog) Put(m Movie) {
	if _, ok := c.movies[m.Title]; !ok {
		c.order = append(c.order, m.Title)
	}
	c.movies[m.Title] = m
}

// Remove deletes title, returning false if it was absent
func (c *Catalog) Remove(title string) bool {
	if _, ok := c.movies[title]; !ok {
		return false
	}
	delete(c.movies, title)
	for i, t := range c.order {
		if t == title {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// SetRating rewrites the rating of an existing record.
// Returns false if title is absent.
func (c *Catalog) SetRating(title string, rating float64) bool {
	m, ok := c.movies[title]
	if !ok {
		return false
	}
	m.Rating = rating
	c.movies[title] = m
	return true
}

// Titles returns all titles in catalog order
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.order))
	copy(titles, c.order)
	return titles
}

// Movies returns all records in catalog order
func (c *Catalog) Movies() []Movie {
	movies := make([]Movie, 0, len(c.order))
	for _, t := range c.order {
		movies = append(movies, c.movies[t])
	}
	return movies
}
