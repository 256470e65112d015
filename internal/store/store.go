package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"inkwell/internal/model"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDefaultProject marks operations rejected on the reserved Default
	// project (delete, rename).
	ErrDefaultProject = errors.New("default project is protected")

	// ErrProjectExists is returned when a project name is already taken.
	ErrProjectExists = errors.New("a project with that name already exists")

	// ErrEmptyName is returned when a required name is blank.
	ErrEmptyName = errors.New("name is required")

	// ErrBadStatus is returned for statuses outside draft|archived.
	ErrBadStatus = errors.New("invalid status")
)

// Store is the SQLite-backed persistence layer. Safe for concurrent use;
// database/sql pools connections underneath.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path, applies migrations
// and ensures the Default project exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Pragmas for multi-process local usage. WAL enables one writer + many
	// readers; busy_timeout avoids "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := s.ensureDefaultProject(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			whiteboard TEXT NOT NULL DEFAULT '',
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS prompts (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			content TEXT NOT NULL DEFAULT '',
			project_id TEXT REFERENCES projects(id),
			position INTEGER NOT NULL DEFAULT 0,
			created_at_unixms INTEGER NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_prompts_project ON prompts(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_prompts_status ON prompts(status);`,
		`CREATE INDEX IF NOT EXISTS idx_prompts_position ON prompts(position);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := s.db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// ensureDefaultProject creates the reserved Default project if missing and
// returns its id.
func (s *Store) ensureDefaultProject(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM projects WHERE name = ?`, model.DefaultProjectName).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}
	id, err = s.newID(ctx, "proj")
	if err != nil {
		return "", err
	}
	nowMs := time.Now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects(id, name, whiteboard, created_at_unixms, updated_at_unixms) VALUES(?, ?, '', ?, ?)`,
		id, model.DefaultProjectName, nowMs, nowMs)
	if err != nil {
		return "", err
	}
	return id, nil
}

// DefaultProject returns the reserved Default project, recreating it if an
// earlier import removed it.
func (s *Store) DefaultProject(ctx context.Context) (model.Project, error) {
	id, err := s.ensureDefaultProject(ctx)
	if err != nil {
		return model.Project{}, err
	}
	return s.GetProject(ctx, id)
}

func msToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
