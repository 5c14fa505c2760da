// Package store provides the sqlite-backed music catalog.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/osa030/tunebox/internal/infra/logger"
)

// MemoryPath opens a private in-memory catalog.
const MemoryPath = ":memory:"

// ErrNotFound is returned when a playlist or song does not exist.
var ErrNotFound = errors.New("not found")

// Store is the music catalog.
type Store struct {
	db    *sql.DB
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

// Open opens the catalog at path, creating the file and schema if needed.
func Open(path string) (*Store, error) {
	dsn := path
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create catalog directory")
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open catalog")
	}
	if path == MemoryPath {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize catalog schema")
	}

	s := &Store{
		db:    db,
		log:   logger.Component("store"),
		now:   time.Now,
		newID: uuid.NewString,
	}
	s.log.Debug().Msgf("catalog opened: path=%s", path)
	return s, nil
}

// Close closes the catalog.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx executes fn within a transaction.
// It handles Begin, Rollback on error, and Commit on success.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "failed to commit transaction")
}

func (s *Store) timestamp() int64 {
	return s.now().UnixNano()
}

func fromTimestamp(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}

func nullString(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}
