// FILE: internal/server/storage/storage.go
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	writeQueueSize = 1000
	flushTimeout   = 2 * time.Second
)

// writeOp is one queued audit write. kind names it in logs.
type writeOp struct {
	kind  string
	apply func(*sql.Tx) error
}

// Store is an append-mostly SQLite log of games and moves. Writes are queued
// and applied in order by a single writer goroutine; the first failed write
// marks the store degraded and later writes are dropped.
type Store struct {
	db     *sql.DB
	path   string
	writes chan writeOp
	done   chan struct{}

	mu     sync.RWMutex // guards closed against concurrent enqueue
	closed bool

	healthy   atomic.Bool
	causeMu   sync.Mutex
	cause     error
	closeOnce sync.Once
	closeErr  error
}

// dataSource builds the go-sqlite3 DSN. Pragmas passed this way apply to
// every pooled connection, not only the first.
func dataSource(path string, wal bool) string {
	dsn := path + "?_foreign_keys=1&_busy_timeout=5000"
	if wal {
		dsn += "&_journal_mode=WAL"
	}
	return dsn
}

// NewStore opens the audit database at path and starts the writer. WAL
// journaling is enabled in dev mode so `chess-server db query` can read while
// the server writes.
func NewStore(path string, devMode bool) (*Store, error) {
	db, err := sql.Open("sqlite3", dataSource(path, devMode))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// Writes are serialized by the writer goroutine; extra connections only
	// serve queries.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)

	s := &Store{
		db:     db,
		path:   path,
		writes: make(chan writeOp, writeQueueSize),
		done:   make(chan struct{}),
	}
	s.healthy.Store(true)

	go s.writer()

	return s, nil
}

// IsHealthy reports whether every write so far has succeeded
func (s *Store) IsHealthy() bool {
	return s.healthy.Load()
}

// Degraded returns the error that degraded the store, or nil
func (s *Store) Degraded() error {
	s.causeMu.Lock()
	defer s.causeMu.Unlock()
	return s.cause
}

func (s *Store) degrade(kind string, err error) {
	s.causeMu.Lock()
	if s.cause == nil {
		s.cause = fmt.Errorf("%s write: %w", kind, err)
	}
	s.causeMu.Unlock()

	if s.healthy.Swap(false) {
		log.Error().Err(err).Str("write", kind).Msg("storage degraded, audit log writes stopped")
	}
}

// writer applies queued writes until the queue is closed and drained
func (s *Store) writer() {
	defer close(s.done)

	for op := range s.writes {
		if !s.healthy.Load() {
			continue
		}
		if err := s.apply(op); err != nil {
			s.degrade(op.kind, err)
		}
	}
}

func (s *Store) apply(op writeOp) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := op.apply(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// enqueue hands a write to the writer. Writes are dropped when the store is
// degraded, closed or the queue is full; the in-memory games stay
// authoritative either way.
func (s *Store) enqueue(kind string, fn func(*sql.Tx) error) {
	if !s.healthy.Load() {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		log.Debug().Str("write", kind).Msg("storage closed, dropping write")
		return
	}

	select {
	case s.writes <- writeOp{kind: kind, apply: fn}:
	default:
		log.Warn().Str("write", kind).Msg("storage write queue full, dropping write")
	}
}

// Close flushes queued writes and closes the database. It is safe to call
// more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.writes)
		s.mu.Unlock()

		select {
		case <-s.done:
		case <-time.After(flushTimeout):
			log.Warn().Int("pending", len(s.writes)).Msg("storage flush timed out, some writes may be lost")
		}

		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// InitDB creates the games and moves tables if they do not exist
func (s *Store) InitDB() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the store and removes the database file together with its
// WAL side files
func (s *Store) DeleteDB() error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	for _, p := range []string{s.path, s.path + "-wal", s.path + "-shm"} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete %s: %w", p, err)
		}
	}

	return nil
}
