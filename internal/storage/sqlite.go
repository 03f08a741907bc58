package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// DefaultDBPath returns the default database path (~/.arcade/scores.db).
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".arcade/scores.db"
	}
	return filepath.Join(home, ".arcade", "scores.db")
}

// Open opens or creates a SQLite database at the given path and applies
// the schema migrations. The parent directory is created if needed.
func Open(path string) (*Store, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY from concurrent background saves.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	s, err := newStore(context.Background(), db, dialectSQLite)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}
