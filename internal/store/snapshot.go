package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"inkwell/internal/model"
)

// Snapshot is a full copy of the store, used by backup/restore.
type Snapshot struct {
	Projects []model.Project `json:"projects"`
	Prompts  []model.Prompt  `json:"prompts"`
	Settings []model.Setting `json:"settings"`
}

func (s *Store) Export(ctx context.Context) (*Snapshot, error) {
	out := &Snapshot{Settings: []model.Setting{}}

	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	out.Projects = projects

	prompts, err := s.ListPrompts(ctx, PromptFilter{})
	if err != nil {
		return nil, err
	}
	out.Prompts = prompts

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("exporting settings: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st model.Setting
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return nil, err
		}
		out.Settings = append(out.Settings, st)
	}
	return out, rows.Err()
}

// Import replaces the entire store contents with the snapshot, then
// re-ensures the Default project so the reassignment invariant holds even
// for snapshots that predate it.
func (s *Store) Import(ctx context.Context, snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("nil snapshot")
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Replace-all strategy, prompts first for the foreign key.
	for _, t := range []string{"prompts", "projects", "settings"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}
	for _, p := range snap.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects(id, name, whiteboard, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Whiteboard, p.CreatedAt.UTC().UnixMilli(), p.UpdatedAt.UTC().UnixMilli()); err != nil {
			return fmt.Errorf("importing project %s: %w", p.ID, err)
		}
	}
	for _, p := range snap.Prompts {
		if _, err := tx.ExecContext(ctx, `INSERT INTO prompts(
			id, name, status, content, project_id, position, created_at_unixms, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, string(p.Status), p.Content, p.ProjectID, p.Order,
			p.CreatedAt.UTC().UnixMilli(), p.UpdatedAt.UTC().UnixMilli()); err != nil {
			return fmt.Errorf("importing prompt %s: %w", p.ID, err)
		}
	}
	for _, st := range snap.Settings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO settings(key, value) VALUES(?, ?)`, st.Key, st.Value); err != nil {
			return fmt.Errorf("importing setting %s: %w", st.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	_, err = s.ensureDefaultProject(ctx)
	return err
}

// WriteSnapshot writes a snapshot as indented JSON.
func WriteSnapshot(path string, snap *Snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}

// ReadSnapshot reads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}
