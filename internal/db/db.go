// Package db provides database connection management and CRUD repositories.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with caseport-specific configuration.
type DB struct {
	*sql.DB
}

// Open opens the sqlite database under dataDir with:
// - WAL mode for concurrent reads alongside the single writer
// - Foreign key constraints enabled
func Open(dataDir string) (*DB, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "caseport.db")

	// modernc.org/sqlite is pure Go, no CGO
	database, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := configure(database); err != nil {
		database.Close()
		return nil, err
	}

	return &DB{database}, nil
}

// OpenInMemory opens a throwaway in-memory database, used by tests and
// the CLI seed path.
func OpenInMemory() (*DB, error) {
	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}

	if err := configure(database); err != nil {
		database.Close()
		return nil, err
	}

	return &DB{database}, nil
}

func configure(database *sql.DB) error {
	// SQLite doesn't support multiple writers
	database.SetMaxOpenConns(1)
	database.SetMaxIdleConns(1)

	if _, err := database.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := database.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
