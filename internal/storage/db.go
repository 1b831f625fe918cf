// ABOUTME: SQLite database connection and lifecycle management.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// DB is the Store: it exclusively owns the SQLite connection and the three
// tables behind it. Writes are serialized by mu; each operation runs in its
// own transaction.
type DB struct {
	mu     sync.RWMutex
	db     *sql.DB
	dbPath string
	log    zerolog.Logger
}

// Compile-time check that DB implements Repository.
var _ Repository = (*DB)(nil)

// Option configures a DB at Open time.
type Option func(*DB)

// WithLogger sets the logger used for lifecycle and debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(d *DB) {
		d.log = l.With().Str("component", "storage").Logger()
	}
}

// pragmas are applied by the driver on every new connection, so foreign key
// enforcement cannot be lost when the pool recycles a connection.
var pragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"busy_timeout(5000)",
	"synchronous(NORMAL)",
}

// Open opens or creates a SQLite database at the given path and ensures the
// schema exists. Opening an existing database never discards its data.
func Open(dbPath string, opts ...Option) (*DB, error) {
	d := &DB{dbPath: dbPath, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}

	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single writer: one connection serializes every statement at the driver.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d.db = db

	if err := d.verifyForeignKeys(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("configure pragmas: %w", err)
	}

	// Set file permissions once the file exists
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	d.log.Debug().Str("path", dbPath).Msg("database opened")
	return d, nil
}

// DataDir returns the default data directory following the XDG base directory layout.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "liftlog")
}

// DefaultDBPath returns the default database path following the XDG base directory layout.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "liftlog.db")
}

// Path returns the file the database was opened from.
func (d *DB) Path() string {
	return d.dbPath
}

// Close closes the database connection. Any later operation fails with
// ErrNotConnected; there is no implicit reconnect.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db == nil {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.log.Debug().Str("path", d.dbPath).Msg("database closed")
	return err
}

func dsn(dbPath string) string {
	params := make([]string, 0, len(pragmas)+1)
	for _, p := range pragmas {
		params = append(params, "_pragma="+p)
	}
	// BEGIN IMMEDIATE takes the write lock up front so check-then-act
	// sequences cannot interleave with another writer on the same file.
	params = append(params, "_txlock=immediate")
	return dbPath + "?" + strings.Join(params, "&")
}

// verifyForeignKeys fails when the driver did not enable FK enforcement.
func (d *DB) verifyForeignKeys() error {
	var enabled int
	if err := d.db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("read foreign_keys: %w", err)
	}
	if enabled != 1 {
		return fmt.Errorf("foreign key enforcement is disabled")
	}
	return nil
}

// write runs fn in a transaction while holding the write lock.
func (d *DB) write(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return ErrNotConnected
	}
	return withTx(ctx, d.db, fn)
}

// read runs fn in a transaction while holding the read lock.
func (d *DB) read(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		return ErrNotConnected
	}
	return withTx(ctx, d.db, fn)
}
