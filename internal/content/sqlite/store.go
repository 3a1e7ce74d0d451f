// Package sqlite implements the content storage contract on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	_ "modernc.org/sqlite"

	"git.home.luguber.info/inful/sitegraph/internal/content"
	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
)

// TimeLayout is the layout of the GMT timestamp columns.
const TimeLayout = "2006-01-02 15:04:05"

var (
	_ content.Store       = (*Store)(nil)
	_ content.MediaStore  = (*Store)(nil)
	_ content.AuthorStore = (*Store)(nil)
)

// Store reads site content from a SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens the database at dsn and creates missing tables.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, storageError(err, "open sqlite database").WithContext("dsn", dsn).Build()
	}
	store := New(db, dsn)
	if err := store.Migrate(context.Background()); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, err
	}
	return store, nil
}

// New wraps an existing handle without touching the schema. An in-memory database lives
// on a single connection, so the pool is pinned to one.
func New(db *sql.DB, dsn string) *Store {
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	return &Store{db: db}
}

// DB exposes the underlying handle for fixtures and maintenance.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageError(err, "ping database").Build()
	}
	return nil
}

// Migrate creates the content tables when they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, contentSchema); err != nil {
		return storageError(err, "initialize schema").Build()
	}
	if _, err := s.db.ExecContext(ctx, schedulerSchema); err != nil {
		return storageError(err, "initialize scheduler schema").Build()
	}
	return nil
}

func storageError(err error, op string) *errors.ErrorBuilder {
	return errors.WrapError(err, errors.CategoryStorage, op).Retryable()
}
