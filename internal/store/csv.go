package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmcdole/moviedb/internal/domain"
)

var csvHeader = []string{"title", "year", "rating", "poster"}

// csvCodec stores one movie per row under a title,year,rating,poster header.
// The poster column may be missing on read.
type csvCodec struct{}

func (csvCodec) name() string { return "csv" }

func (csvCodec) decode(r io.Reader) (*domain.Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	catalog := domain.NewCatalog()

	header, err := reader.Read()
	if err == io.EOF {
		return catalog, nil
	}
	if err != nil {
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range csvHeader[:3] {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		title := field(row, "title")
		if title == "" {
			continue
		}
		year, err := strconv.Atoi(field(row, "year"))
		if err != nil {
			return nil, fmt.Errorf("movie %q: invalid year: %w", title, err)
		}
		rating, err := strconv.ParseFloat(field(row, "rating"), 64)
		if err != nil {
			return nil, fmt.Errorf("movie %q: invalid rating: %w", title, err)
		}
		if err := checkRating(title, rating); err != nil {
			return nil, err
		}

		catalog.Put(domain.Movie{
			Title:  title,
			Year:   year,
			Rating: rating,
			Poster: field(row, "poster"),
		})
	}

	return catalog, nil
}

func (csvCodec) encode(w io.Writer, c *domain.Catalog) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, m := range c.Movies() {
		row := []string{
			m.Title,
			strconv.Itoa(m.Year),
			strconv.FormatFloat(m.Rating, 'f', -1, 64),
			m.Poster,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
