// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// WHY SQLITE?
// SQLite is an embedded database — it lives inside your Go binary as a single file.
// No separate database server to install, configure, or manage. Perfect for:
// - Learning database patterns without infrastructure complexity
// - Single-server deployments (which is most apps, honestly)
// - Development and testing (use ":memory:" for in-memory DB)
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C compiler
// installed and cross-compilation becomes painful. modernc.org/sqlite is a pure Go
// translation of the SQLite C code — no C compiler needed, works everywhere Go works.
//
// DATABASE/SQL OVERVIEW:
// Go's standard library provides "database/sql" — a generic interface for SQL databases.
// It works with any database through "drivers" (SQLite, Postgres, MySQL, etc.).
// The pattern is always:
//  1. sql.Open(driverName, dataSourceName) → creates a pool
//  2. db.QueryContext / db.ExecContext     → runs queries
//  3. rows.Scan(&field1, &field2)          → reads results into Go variables
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	// BLANK IMPORT:
	// The underscore import `_ "modernc.org/sqlite"` is a "side-effect only" import.
	// The sqlite package's init() function registers itself with database/sql as a
	// driver named "sqlite". After this import, sql.Open("sqlite", ...) works.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides repository methods.
// It implements every repository interface (authors, books, users,
// artifacts, reset) — one storage type, many capabilities, each consumed
// through a narrow interface by the service that needs it.
type DB struct {
	conn *sql.DB
}

// New creates a new SQLite database connection and runs migrations.
//
// dbPath examples:
//   - "data/course.db" → file-based database (persistent)
//   - ":memory:"       → in-memory database (great for tests, lost on close)
func New(dbPath string) (*DB, error) {
	// PRAGMA PER CONNECTION:
	// sql.DB is a connection POOL, and foreign_keys / busy_timeout are
	// per-connection settings — a one-time Exec would configure whichever
	// connection the pool happened to hand out, leaving every later
	// connection with foreign keys OFF. The driver's _pragma DSN options
	// run on EVERY connection the pool opens:
	//   - foreign_keys(1): SQLite ships with FKs off for backwards
	//     compatibility; we rely on them (books → authors/users,
	//     artifacts → artifacts).
	//   - busy_timeout(5000): wait up to 5s for a write lock instead of
	//     failing immediately with SQLITE_BUSY under concurrent writers.
	//   - journal_mode(WAL): concurrent reads while a write is happening.
	//     WAL persists in the database file, but setting it in the DSN
	//     covers a fresh file from its very first connection too.
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database lives and dies with its connection — a second
	// pooled connection would see a separate, empty database. Pin the pool
	// to one connection so ":memory:" behaves like a single database.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// Ping verifies the connection actually works. Without this, a bad path
	// or permissions issue would only surface on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent — safe to run on every startup against an existing file.
//
// ON DELETE RESTRICT vs the default:
// books.author_id restricts deletes: an author with books cannot be removed
// until the books are. The repository translates the constraint failure
// into a Conflict error. artifacts.parent_id uses the default NO ACTION —
// equally blocking for a normal delete of a parent with children, but
// deferrable, which the reset transaction relies on (SQLite checks
// RESTRICT immediately even inside a deferred-constraint transaction).
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS authors (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			email      TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			name          TEXT NOT NULL,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS books (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			year       INTEGER NOT NULL,
			author_id  TEXT NOT NULL REFERENCES authors(id) ON DELETE RESTRICT,
			owner_id   TEXT REFERENCES users(id) ON DELETE CASCADE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_books_author_id ON books(author_id);
		CREATE INDEX IF NOT EXISTS idx_books_owner_id  ON books(owner_id);

		CREATE TABLE IF NOT EXISTS artifacts (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			lat         REAL NOT NULL,
			lon         REAL NOT NULL,
			alt         REAL,
			owner_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			parent_id   TEXT REFERENCES artifacts(id),
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_artifacts_parent_id ON artifacts(parent_id);
	`)
	if err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite doesn't export a typed error for this, so we
// match on the message — the constant "UNIQUE constraint failed" prefix is
// part of SQLite's documented error text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation reports whether err is a SQLite FOREIGN KEY
// constraint failure (insert referencing a missing row, or delete of a row
// that is still referenced).
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
