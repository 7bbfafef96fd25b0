// Package journal records batch runs in a SQLite database so a strip can be
// audited after the fact: every file row carries its size and BLAKE2b-256
// digest before and after the operation.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ankit-chaubey/fileprops/core/logging"
	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned when a run id is not in the journal.
var ErrRunNotFound = errors.New("run not found")

// Journal is an open journal database.
type Journal struct {
	db     *sql.DB
	logger logging.Logger

	mu      sync.Mutex
	pending map[pendingKey]snapshot
}

type pendingKey struct {
	run   string
	index int
}

// Open creates or migrates the journal at path.
func Open(path string, logger logging.Logger) (*Journal, error) {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to journal: %w", err)
	}

	if needsMigration(db) {
		logger.Info(context.Background(), "migrating journal", logging.Fields{"path": path})
		if err := runMigrations(path); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	_, err = db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal pragmas: %w", err)
	}

	return &Journal{db: db, logger: logger, pending: make(map[pendingKey]snapshot)}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
