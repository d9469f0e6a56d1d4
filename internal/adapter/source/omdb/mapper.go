package omdb

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/moviedb/internal/domain"
)

// notAvailable is the service's sentinel for missing fields
const notAvailable = "N/A"

var yearDigits = regexp.MustCompile(`\d{1,4}`)

// MapMovie converts a title lookup to a domain movie
func MapMovie(r TitleResponse) domain.Movie {
	return domain.Movie{
		Title:  strings.TrimSpace(r.Title),
		Year:   parseYear(r.Year),
		Rating: parseRating(r.IMDBRating),
		Poster: parsePoster(r.Poster),
	}
}

// parseYear takes the leading four digits of a decorated year string
// ("2010–2013" -> 2010). Falls back to domain.FallbackYear without digits.
func parseYear(s string) int {
	match := yearDigits.FindString(s)
	if match == "" {
		return domain.FallbackYear
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return domain.FallbackYear
	}
	return year
}

// parseRating returns the clamped rating, 0 for "N/A" or garbage
func parseRating(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == notAvailable {
		return 0
	}
	rating, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return domain.ClampRating(rating)
}

func parsePoster(s string) string {
	s = strings.TrimSpace(s)
	if s == notAvailable {
		return ""
	}
	return s
}
