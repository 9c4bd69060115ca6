package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// migrations upgrade a run-history database one user_version at a time.
// Entry i moves a database from version i to version i+1.
var migrations = []func(*sql.DB) error{
	// v1: history --digest filters on grid_digest and orders by seq.
	indexRunsByDigest,
}

// currentSchemaVersion is the user_version of a fully migrated database.
var currentSchemaVersion = len(migrations)

// Store records solved patrol runs and the obstruction cells they found.
type Store struct {
	db *sql.DB
}

// Open creates or opens the run-history database at path.
//
// Every connection is configured with:
//   - WAL journaling, so history can read while solve --db appends
//   - NORMAL synchronous; a lost run after a crash is re-solvable
//   - a 5 second busy timeout for concurrent solve invocations
//   - foreign keys, so obstruction rows cannot outlive their run
//
// Opening an existing database only applies missing migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: a run and its obstructions are written in a single
	// transaction, and ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Query runs a read against the run tables.
// Callers must close the returned rows.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

var pragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA busy_timeout = 5000",
	"PRAGMA foreign_keys = ON",
}

func applyPragmas(db *sql.DB) error {
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates the runs and obstructions tables, then migrates.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// runMigrations applies every migration past the stored user_version.
// A database newer than this binary is left untouched.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version >= currentSchemaVersion {
		return nil
	}

	for v := version; v < currentSchemaVersion; v++ {
		if err := migrations[v](db); err != nil {
			return fmt.Errorf("migrate to v%d: %w", v+1, err)
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

func indexRunsByDigest(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_runs_grid_digest
		ON runs(grid_digest, seq)
	`)
	return err
}

// verifyPragma checks that a pragma is set to the expected value.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
