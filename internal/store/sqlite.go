package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	apperrors "pyironenv/internal/errors"
)

// DefaultFileName is the job database file created under the resource path.
const DefaultFileName = "sqlite.db"

// jobTable is the table the consuming application records job metadata in.
const jobTable = "jobs_pyiron"

const jobSchema = `CREATE TABLE IF NOT EXISTS ` + jobTable + ` (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	parentid INTEGER,
	masterid INTEGER,
	projectpath TEXT,
	project TEXT,
	job TEXT,
	subjob TEXT,
	chemicalformula TEXT,
	status TEXT,
	hamilton TEXT,
	hamversion TEXT,
	username TEXT,
	computer TEXT,
	timestart TIMESTAMP,
	timestop TIMESTAMP,
	totalcputime REAL
);`

// JobStore prepares the local SQLite job database the application falls back
// to when no central database is configured.
type JobStore struct {
	db   *sql.DB
	path string
}

// Open creates or opens the job database file, creating its parent directory
// first so the SQLite driver does not trip over a missing path.
func Open(path string) (*JobStore, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, storeError("store.open", "failed to create database directory", err, apperrors.Metadata{
				"dir": dir,
			})
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storeError("store.open", "failed to open job database", err, apperrors.Metadata{
			"path": path,
		})
	}

	return &JobStore{db: db, path: path}, nil
}

// Bootstrap creates the initial job schema when missing. Safe to call on an
// already bootstrapped database.
func (s *JobStore) Bootstrap(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, jobSchema); err != nil {
		return storeError("store.bootstrap", "failed to create job schema", err, apperrors.Metadata{
			"path":  s.path,
			"table": jobTable,
		})
	}
	return nil
}

// HasJobTable reports whether the job table exists; used by the status view.
func (s *JobStore) HasJobTable(ctx context.Context) (bool, error) {
	const query = `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`

	var name string
	err := s.db.QueryRowContext(ctx, query, jobTable).Scan(&name)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, storeError("store.hasJobTable", "failed to query schema", err, apperrors.Metadata{
			"path": s.path,
		})
	}
	return true, nil
}

// Path returns the database file location.
func (s *JobStore) Path() string {
	return s.path
}

// Close releases the underlying database handle.
func (s *JobStore) Close() error {
	return s.db.Close()
}

func storeError(operation, message string, err error, metadata apperrors.Metadata) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCategoryDatabase, apperrors.CodeDatabaseGeneric, message, err).
		WithModule("store").
		WithOperation(operation).
		WithFields(metadata)
}
