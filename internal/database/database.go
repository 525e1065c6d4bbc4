// Package database is the SQLite run store: one row per extraction run plus
// the paragraph, resolution, organization and failure tables it produced.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// pragmas are applied to every connection before migrating.
var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA foreign_keys=ON",
	"PRAGMA busy_timeout=5000",
}

// DB is an open run store.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens the run store at dbPath, creating the file and its directory
// when missing, and migrates it to the latest schema. A nil logger discards
// migration messages.
func Open(dbPath string, log *zap.SugaredLogger) (*DB, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening run store: %w", err)
	}
	// Connection-scoped pragmas must hold for every statement.
	conn.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := migrate(conn, log); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating run store: %w", err)
	}

	log.Debugw("opened run store", "path", dbPath)
	return &DB{conn: conn, path: dbPath}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}
