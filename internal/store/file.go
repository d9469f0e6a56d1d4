package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mmcdole/moviedb/internal/domain"
)

// codec translates between a catalog and one file encoding
type codec interface {
	name() string
	decode(r io.Reader) (*domain.Catalog, error)
	encode(w io.Writer, c *domain.Catalog) error
}

// FileStore implements domain.Storage on a single flat file.
// Each operation reads the whole file and, for mutations, rewrites it.
type FileStore struct {
	path   string
	codec  codec
	logger *slog.Logger
}

// NewFileStore opens a flat-file store, creating the parent directory and an
// empty catalog file when the file is missing or unreadable.
func NewFileStore(path string, c codec, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &FileStore{path: path, codec: c, logger: logger}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := s.save(domain.NewCatalog()); err != nil {
			return nil, fmt.Errorf("failed to create catalog file: %w", err)
		}
		logger.Info("created catalog file", "path", path, "format", c.name())
	}

	return s, nil
}

func (s *FileStore) List() *domain.Catalog {
	data, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Debug("catalog unreadable, treating as empty", "path", s.path, "error", err)
		return domain.NewCatalog()
	}

	catalog, err := s.codec.decode(bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("catalog corrupt, treating as empty", "path", s.path, "format", s.codec.name(), "error", err)
		return domain.NewCatalog()
	}
	return catalog
}

func (s *FileStore) Add(title string, year int, rating float64, poster string) error {
	return s.mutate(func(c *domain.Catalog) bool {
		c.Put(domain.Movie{Title: title, Year: year, Rating: rating, Poster: poster})
		return true
	})
}

func (s *FileStore) Delete(title string) error {
	return s.mutate(func(c *domain.Catalog) bool {
		return c.Remove(title)
	})
}

func (s *FileStore) Update(title string, rating float64) error {
	return s.mutate(func(c *domain.Catalog) bool {
		return c.SetRating(title, rating)
	})
}

// mutate runs a load-modify-rewrite cycle. fn reports whether it changed anything.
func (s *FileStore) mutate(fn func(*domain.Catalog) bool) error {
	catalog := s.List()
	if !fn(catalog) {
		return nil
	}
	return s.save(catalog)
}

func (s *FileStore) save(c *domain.Catalog) error {
	var buf bytes.Buffer
	if err := s.codec.encode(&buf, c); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	s.logger.Debug("catalog written", "path", s.path, "movies", c.Len())
	return nil
}
