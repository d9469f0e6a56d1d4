package service

import (
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/mmcdole/moviedb/internal/domain"
)

// Stats summarizes catalog ratings
type Stats struct {
	Average float64
	Median  float64
	Best    domain.Movie // Highest rated, first encountered on ties
	Worst   domain.Movie // Lowest rated, first encountered on ties
}

// CatalogService answers read-only questions about the stored catalog.
// Every call reloads the catalog from storage.
type CatalogService struct {
	storage domain.Storage
	logger  *slog.Logger
	intn    func(n int) int
}

// NewCatalogService creates a new catalog service
func NewCatalogService(storage domain.Storage, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		storage: storage,
		logger:  logger,
		intn:    rand.IntN,
	}
}

// SetRandom replaces the random index source used by Random
func (s *CatalogService) SetRandom(intn func(n int) int) {
	s.intn = intn
}

// Stats computes average, median, best and worst
func (s *CatalogService) Stats() (Stats, error) {
	return ComputeStats(s.storage.List())
}

// Random picks one movie uniformly
func (s *CatalogService) Random() (domain.Movie, error) {
	movies := s.storage.List().Movies()
	if len(movies) == 0 {
		return domain.Movie{}, domain.ErrEmptyCatalog
	}
	return movies[s.intn(len(movies))], nil
}

// Search returns movies whose title contains query, ignoring case
func (s *CatalogService) Search(query string) []domain.Movie {
	results := Search(s.storage.List(), query)
	s.logger.Debug("search", "query", query, "results", len(results))
	return results
}

// SortedByRating returns all movies, highest rated first
func (s *CatalogService) SortedByRating() []domain.Movie {
	return SortByRating(s.storage.List())
}

// ComputeStats computes rating statistics for c.
// Even-sized catalogs use the mean of the two middle ratings as median.
func ComputeStats(c *domain.Catalog) (Stats, error) {
	movies := c.Movies()
	if len(movies) == 0 {
		return Stats{}, domain.ErrEmptyCatalog
	}

	stats := Stats{Best: movies[0], Worst: movies[0]}
	ratings := make([]float64, len(movies))
	sum := 0.0
	for i, m := range movies {
		ratings[i] = m.Rating
		sum += m.Rating
		if m.Rating > stats.Best.Rating {
			stats.Best = m
		}
		if m.Rating < stats.Worst.Rating {
			stats.Worst = m
		}
	}
	stats.Average = sum / float64(len(movies))

	sort.Float64s(ratings)
	mid := len(ratings) / 2
	if len(ratings)%2 == 0 {
		stats.Median = (ratings[mid-1] + ratings[mid]) / 2
	} else {
		stats.Median = ratings[mid]
	}

	return stats, nil
}

// Search returns the movies of c whose title contains query, ignoring case,
// in catalog order
func Search(c *domain.Catalog, query string) []domain.Movie {
	needle := strings.ToLower(query)
	var results []domain.Movie
	for _, m := range c.Movies() {
		if strings.Contains(strings.ToLower(m.Title), needle) {
			results = append(results, m)
		}
	}
	return results
}

// SortByRating orders c by descending rating, keeping catalog order on ties
func SortByRating(c *domain.Catalog) []domain.Movie {
	movies := c.Movies()
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Rating > movies[j].Rating
	})
	return movies
}
