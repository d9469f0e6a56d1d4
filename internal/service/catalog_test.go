package service

import (
	"testing"

	"github.com/mmcdole/moviedb/internal/domain"
	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory domain.Storage
type memStorage struct {
	catalog *domain.Catalog
}

func newMemStorage(movies ...domain.Movie) *memStorage {
	c := domain.NewCatalog()
	for _, m := range movies {
		c.Put(m)
	}
	return &memStorage{catalog: c}
}

func (s *memStorage) List() *domain.Catalog {
	c := domain.NewCatalog()
	for _, m := range s.catalog.Movies() {
		c.Put(m)
	}
	return c
}

func (s *memStorage) Add(title string, year int, rating float64, poster string) error {
	s.catalog.Put(domain.Movie{Title: title, Year: year, Rating: rating, Poster: poster})
	return nil
}

func (s *memStorage) Delete(title string) error {
	s.catalog.Remove(title)
	return nil
}

func (s *memStorage) Update(title string, rating float64) error {
	s.catalog.SetRating(title, rating)
	return nil
}

func rated(pairs ...any) []domain.Movie {
	var movies []domain.Movie
	for i := 0; i+1 < len(pairs); i += 2 {
		movies = append(movies, domain.Movie{Title: pairs[i].(string), Year: 2000, Rating: pairs[i+1].(float64)})
	}
	return movies
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestStats_EvenCount(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("A", 8.0, "B", 6.0, "C", 10.0, "D", 4.0)...), nil)

	stats, err := svc.Stats()
	require.NoError(t, err)
	require.InDelta(t, 7.0, stats.Average, 1e-9)
	require.InDelta(t, 7.0, stats.Median, 1e-9)
	require.Equal(t, "C", stats.Best.Title)
	require.Equal(t, "D", stats.Worst.Title)
}

func TestStats_OddCount(t *testing.T) {
	stats, err := ComputeStats(newMemStorage(rated("A", 9.0, "B", 1.0, "C", 5.0)...).List())
	require.NoError(t, err)
	require.InDelta(t, 5.0, stats.Median, 1e-9)
	require.InDelta(t, 5.0, stats.Average, 1e-9)
}

func TestStats_TiesFirstEncountered(t *testing.T) {
	stats, err := ComputeStats(newMemStorage(rated("A", 7.0, "B", 9.0, "C", 9.0, "D", 7.0)...).List())
	require.NoError(t, err)
	require.Equal(t, "B", stats.Best.Title)
	require.Equal(t, "A", stats.Worst.Title)
}

func TestStats_Empty(t *testing.T) {
	_, err := NewCatalogService(newMemStorage(), nil).Stats()
	require.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestSortedByRating(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("A", 5.0, "B", 9.0, "C", 7.0)...), nil)
	require.Equal(t, []string{"B", "C", "A"}, titles(svc.SortedByRating()))
}

func TestSortedByRating_StableTies(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("X", 6.0, "Y", 8.0, "Z", 6.0)...), nil)
	require.Equal(t, []string{"Y", "X", "Z"}, titles(svc.SortedByRating()))
}

func TestSearch(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("Spiderman", 7.0, "Batman", 8.0, "Superman", 6.0, "Alien", 8.5)...), nil)

	require.Equal(t, []string{"Spiderman", "Batman", "Superman"}, titles(svc.Search("man")))
	require.Equal(t, []string{"Spiderman", "Batman", "Superman"}, titles(svc.Search("MAN")))
	require.Empty(t, svc.Search("xyz"))
}

func TestRandom(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("A", 1.0, "B", 2.0, "C", 3.0)...), nil)
	var gotN int
	svc.SetRandom(func(n int) int {
		gotN = n
		return 2
	})

	m, err := svc.Random()
	require.NoError(t, err)
	require.Equal(t, 3, gotN)
	require.Equal(t, "C", m.Title)

	_, err = NewCatalogService(newMemStorage(), nil).Random()
	require.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestRandom_DefaultSourceInRange(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("A", 1.0, "B", 2.0)...), nil)
	for i := 0; i < 50; i++ {
		m, err := svc.Random()
		require.NoError(t, err)
		require.Contains(t, []string{"A", "B"}, m.Title)
	}
}

func TestSuggest(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("Batman", 8.0, "Batman Begins", 8.2, "Alien", 8.5)...), nil)

	require.Equal(t, []string{"Batman", "Batman Begins"}, svc.Suggest("btmn", 3))
	require.Equal(t, []string{"Batman"}, svc.Suggest("btmn", 1))
	require.Empty(t, svc.Suggest("xyz", 3))
	require.Empty(t, svc.Suggest("  ", 3))
}

func TestClosest(t *testing.T) {
	svc := NewCatalogService(newMemStorage(rated("The Godfather", 9.2, "Goodfellas", 8.7)...), nil)

	title, ok := svc.Closest("godfathr")
	require.True(t, ok)
	require.Equal(t, "The Godfather", title)

	_, ok = svc.Closest("zzz")
	require.False(t, ok)
}
