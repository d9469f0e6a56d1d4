package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mmcdole/moviedb/internal/domain"
	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

var bucketMovies = []byte("movies")

const boltOpenTimeout = 1 * time.Second

// BoltStore implements domain.Storage on a BoltDB file.
// The database is opened per operation so no handle outlives a command.
// Records load in key (byte) order. A file bolt cannot open lists as empty;
// the next write moves it aside to <path>.corrupt and starts a fresh database.
type BoltStore struct {
	path   string
	logger *slog.Logger
}

// NewBoltStore creates the database file and movies bucket if needed
func NewBoltStore(path string, logger *slog.Logger) (*BoltStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	s := &BoltStore{path: path, logger: logger}
	err := s.withWritableDB(func(db *bolt.DB) error {
		return db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketMovies)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (s *BoltStore) withDB(fn func(db *bolt.DB) error) error {
	db, err := bolt.Open(s.path, 0600, &bolt.Options{Timeout: boltOpenTimeout})
	if err != nil {
		return fmt.Errorf("failed to open bolt db: %w", err)
	}
	defer db.Close()
	return fn(db)
}

// withWritableDB is withDB for writes: a corrupt file is moved aside and
// fn runs again against a new, empty database.
func (s *BoltStore) withWritableDB(fn func(db *bolt.DB) error) error {
	err := s.withDB(fn)
	if !isCorrupt(err) {
		return err
	}

	backup := s.path + ".corrupt"
	s.logger.Warn("catalog corrupt, starting a new database", "path", s.path, "backup", backup, "error", err)
	if err := os.Rename(s.path, backup); err != nil {
		return fmt.Errorf("failed to move corrupt catalog aside: %w", err)
	}
	return s.withDB(fn)
}

// isCorrupt reports whether err means the file is not a usable bolt database
func isCorrupt(err error) bool {
	return errors.Is(err, berrors.ErrInvalid) ||
		errors.Is(err, berrors.ErrVersionMismatch) ||
		errors.Is(err, berrors.ErrChecksum) ||
		errors.Is(err, berrors.ErrInvalidMapping)
}

func (s *BoltStore) List() *domain.Catalog {
	if _, err := os.Stat(s.path); err != nil {
		s.logger.Debug("catalog unreadable, treating as empty", "path", s.path, "error", err)
		return domain.NewCatalog()
	}

	var catalog *domain.Catalog
	err := s.withDB(func(db *bolt.DB) error {
		return db.View(func(tx *bolt.Tx) error {
			var err error
			catalog, err = readBucket(tx)
			return err
		})
	})
	if err != nil {
		s.logger.Warn("catalog corrupt, treating as empty", "path", s.path, "format", "bolt", "error", err)
		return domain.NewCatalog()
	}
	return catalog
}

func (s *BoltStore) Add(title string, year int, rating float64, poster string) error {
	return s.mutate(func(c *domain.Catalog) bool {
		c.Put(domain.Movie{Title: title, Year: year, Rating: rating, Poster: poster})
		return true
	})
}

func (s *BoltStore) Delete(title string) error {
	return s.mutate(func(c *domain.Catalog) bool {
		return c.Remove(title)
	})
}

func (s *BoltStore) Update(title string, rating float64) error {
	return s.mutate(func(c *domain.Catalog) bool {
		return c.SetRating(title, rating)
	})
}

// mutate loads the bucket, applies fn and rewrites the bucket wholesale,
// all inside one write transaction.
func (s *BoltStore) mutate(fn func(*domain.Catalog) bool) error {
	return s.withWritableDB(func(db *bolt.DB) error {
		return db.Update(func(tx *bolt.Tx) error {
			catalog, err := readBucket(tx)
			if err != nil {
				s.logger.Warn("catalog corrupt, rewriting", "path", s.path, "error", err)
				catalog = domain.NewCatalog()
			}
			if !fn(catalog) {
				return nil
			}
			return writeBucket(tx, catalog)
		})
	})
}

func readBucket(tx *bolt.Tx) (*domain.Catalog, error) {
	catalog := domain.NewCatalog()
	b := tx.Bucket(bucketMovies)
	if b == nil {
		return catalog, nil
	}

	err := b.ForEach(func(k, v []byte) error {
		var rec record
		if err := json.Unmarshal(v, &rec); err != nil {
			return fmt.Errorf("movie %q: %w", k, err)
		}
		catalog.Put(rec.movie(string(k)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return catalog, nil
}

func writeBucket(tx *bolt.Tx, c *domain.Catalog) error {
	if tx.Bucket(bucketMovies) != nil {
		if err := tx.DeleteBucket(bucketMovies); err != nil {
			return err
		}
	}
	b, err := tx.CreateBucket(bucketMovies)
	if err != nil {
		return err
	}

	for _, m := range c.Movies() {
		data, err := json.Marshal(newRecord(m))
		if err != nil {
			return err
		}
		if err := b.Put([]byte(m.Title), data); err != nil {
			return err
		}
	}
	return nil
}
