package store

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/mmcdole/moviedb/internal/domain"
)

// Format identifies an on-disk catalog encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
	FormatBolt Format = "bolt"
)

// Formats lists every supported encoding
var Formats = []Format{FormatJSON, FormatCSV, FormatYAML, FormatBolt}

// ParseFormat converts a config string to a Format
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown storage format %q", s)
}

// DefaultPath returns the catalog file used when none is configured
func (f Format) DefaultPath() string {
	switch f {
	case FormatCSV:
		return "data/movies.csv"
	case FormatYAML:
		return "data/movies.yaml"
	case FormatBolt:
		return "data/movies.db"
	default:
		return "data.json"
	}
}

// New creates the storage backend for format at path, seeding an empty
// catalog file if none exists yet.
func New(format Format, path string, logger *slog.Logger) (domain.Storage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		path = format.DefaultPath()
	}

	switch format {
	case FormatJSON:
		return NewFileStore(path, jsonCodec{}, logger)
	case FormatCSV:
		return NewFileStore(path, csvCodec{}, logger)
	case FormatYAML:
		return NewFileStore(path, yamlCodec{}, logger)
	case FormatBolt:
		return NewBoltStore(path, logger)
	default:
		return nil, fmt.Errorf("unknown storage format %q", format)
	}
}

// record is the per-title payload shared by the document encodings
type record struct {
	Year   int     `json:"year" yaml:"year"`
	Rating float64 `json:"rating" yaml:"rating"`
	Poster string  `json:"poster,omitempty" yaml:"poster,omitempty"`
}

func newRecord(m domain.Movie) record {
	return record{Year: m.Year, Rating: m.Rating, Poster: m.Poster}
}

// checkRating rejects ratings no encoder writes, such as NaN or Inf
func checkRating(title string, rating float64) error {
	if math.IsNaN(rating) || math.IsInf(rating, 0) {
		return fmt.Errorf("movie %q: rating %v is not a finite number", title, rating)
	}
	return nil
}

func (r record) movie(title string) domain.Movie {
	return domain.Movie{Title: title, Year: r.Year, Rating: r.Rating, Poster: r.Poster}
}
