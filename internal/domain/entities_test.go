package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCatalog_PutKeepsOrder(t *testing.T) {
	c := NewCatalog()
	c.Put(Movie{Title: "B", Year: 2001, Rating: 6})
	c.Put(Movie{Title: "A", Year: 2002, Rating: 7})
	c.Put(Movie{Title: "B", Year: 2003, Rating: 9})

	require.Equal(t, []string{"B", "A"}, c.Titles())
	m, ok := c.Get("B")
	require.True(t, ok)
	require.Equal(t, 2003, m.Year)
	require.Equal(t, 9.0, m.Rating)
}

func TestCatalog_Remove(t *testing.T) {
	c := NewCatalog()
	c.Put(Movie{Title: "A"})
	c.Put(Movie{Title: "B"})
	c.Put(Movie{Title: "C"})

	require.True(t, c.Remove("B"))
	require.False(t, c.Remove("B"))
	require.Equal(t, []string{"A", "C"}, c.Titles())
	require.Equal(t, 2, c.Len())
}

func TestCatalog_SetRating(t *testing.T) {
	c := NewCatalog()
	c.Put(Movie{Title: "A", Year: 1999, Rating: 5, Poster: "http://img/a.jpg"})

	require.True(t, c.SetRating("A", 8.5))
	require.False(t, c.SetRating("missing", 1))

	m, _ := c.Get("A")
	require.Equal(t, Movie{Title: "A", Year: 1999, Rating: 8.5, Poster: "http://img/a.jpg"}, m)
}

func TestCatalog_MoviesIsCopy(t *testing.T) {
	c := NewCatalog()
	c.Put(Movie{Title: "A", Rating: 1})

	movies := c.Movies()
	movies[0].Rating = 10

	m, _ := c.Get("A")
	require.Equal(t, 1.0, m.Rating)
	require.True(t, NewCatalog().IsEmpty())
}

func TestRatingBounds(t *testing.T) {
	require.True(t, ValidRating(0))
	require.True(t, ValidRating(10))
	require.False(t, ValidRating(-1))
	require.False(t, ValidRating(11))
	require.False(t, ValidRating(math.NaN()))

	require.Equal(t, 10.0, ClampRating(12))
	require.Equal(t, 0.0, ClampRating(-3))
	require.Equal(t, 0.0, ClampRating(math.NaN()))
	require.Equal(t, 7.3, ClampRating(7.3))
}
