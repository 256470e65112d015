package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/model"
)

// ProjectUpdate carries the optional fields of a project update; nil leaves
// the field unchanged.
type ProjectUpdate struct {
	Name       *string
	Whiteboard *string
}

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, whiteboard, created_at_unixms, updated_at_unixms FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetProject(ctx context.Context, id string) (model.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, whiteboard, created_at_unixms, updated_at_unixms FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return model.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Project{}, fmt.Errorf("getting project: %w", err)
	}
	return p, nil
}

func (s *Store) CreateProject(ctx context.Context, name, whiteboard string) (model.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Project{}, ErrEmptyName
	}
	taken, err := s.projectNameTaken(ctx, name, "")
	if err != nil {
		return model.Project{}, err
	}
	if taken {
		return model.Project{}, ErrProjectExists
	}
	id, err := s.newID(ctx, "proj")
	if err != nil {
		return model.Project{}, err
	}
	nowMs := time.Now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects(id, name, whiteboard, created_at_unixms, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		id, name, whiteboard, nowMs, nowMs)
	if err != nil {
		return model.Project{}, fmt.Errorf("creating project: %w", err)
	}
	return s.GetProject(ctx, id)
}

func (s *Store) UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (model.Project, error) {
	cur, err := s.GetProject(ctx, id)
	if err != nil {
		return model.Project{}, err
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return model.Project{}, ErrEmptyName
		}
		// The Default project is the reassignment anchor for deleted
		// projects; renaming it would orphan that invariant.
		if cur.Name == model.DefaultProjectName && name != model.DefaultProjectName {
			return model.Project{}, ErrDefaultProject
		}
		if name != cur.Name {
			taken, err := s.projectNameTaken(ctx, name, id)
			if err != nil {
				return model.Project{}, err
			}
			if taken {
				return model.Project{}, ErrProjectExists
			}
		}
		cur.Name = name
	}
	if upd.Whiteboard != nil {
		cur.Whiteboard = *upd.Whiteboard
	}
	nowMs := time.Now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, whiteboard = ?, updated_at_unixms = ? WHERE id = ?`,
		cur.Name, cur.Whiteboard, nowMs, id)
	if err != nil {
		return model.Project{}, fmt.Errorf("updating project: %w", err)
	}
	return s.GetProject(ctx, id)
}

// UpdateWhiteboard replaces only the whiteboard text.
func (s *Store) UpdateWhiteboard(ctx context.Context, id, whiteboard string) (model.Project, error) {
	return s.UpdateProject(ctx, id, ProjectUpdate{Whiteboard: &whiteboard})
}

// DeleteProject removes a project after reassigning its prompts to the
// Default project. Deleting the Default project is rejected.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	cur, err := s.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if cur.Name == model.DefaultProjectName {
		return ErrDefaultProject
	}
	defID, err := s.ensureDefaultProject(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE prompts SET project_id = ? WHERE project_id = ?`, defID, id); err != nil {
		return fmt.Errorf("reassigning prompts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}
	return tx.Commit()
}

func (s *Store) projectNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM projects WHERE name = ? AND id != ?`, name, excludeID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (model.Project, error) {
	var (
		p                    model.Project
		createdMs, updatedMs int64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Whiteboard, &createdMs, &updatedMs); err != nil {
		return model.Project{}, err
	}
	p.CreatedAt = msToTime(createdMs)
	p.UpdatedAt = msToTime(updatedMs)
	return p, nil
}
