package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/model"
)

// PromptCreate holds the fields accepted when creating a prompt. A nil
// ProjectID assigns the prompt to the Default project. An empty Name is
// derived from Content.
type PromptCreate struct {
	Name      string
	Status    model.Status
	Content   string
	ProjectID *string
}

// PromptUpdate carries the optional fields of a prompt update; nil leaves
// the field unchanged.
type PromptUpdate struct {
	Name      *string
	Status    *model.Status
	Content   *string
	ProjectID *string
}

// PromptFilter narrows ListPrompts. Zero values mean "all".
type PromptFilter struct {
	ProjectID string
	Status    model.Status
}

const promptColumns = `p.id, p.name, p.status, p.content, p.project_id, proj.name, p.position, p.created_at_unixms, p.updated_at_unixms`

func (s *Store) ListPrompts(ctx context.Context, f PromptFilter) ([]model.Prompt, error) {
	q := `SELECT ` + promptColumns + `
		FROM prompts p
		LEFT JOIN projects proj ON p.project_id = proj.id`
	var (
		conds []string
		args  []any
	)
	if f.ProjectID != "" {
		conds = append(conds, "p.project_id = ?")
		args = append(args, f.ProjectID)
	}
	if f.Status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, string(f.Status))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY p.position, p.id"

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("listing prompts: %w", err)
	}
	defer rows.Close()

	out := []model.Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) GetPrompt(ctx context.Context, id string) (model.Prompt, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+promptColumns+`
		FROM prompts p
		LEFT JOIN projects proj ON p.project_id = proj.id
		WHERE p.id = ?`, id)
	p, err := scanPrompt(row)
	if err == sql.ErrNoRows {
		return model.Prompt{}, fmt.Errorf("prompt %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return model.Prompt{}, fmt.Errorf("getting prompt: %w", err)
	}
	return p, nil
}

func (s *Store) CreatePrompt(ctx context.Context, in PromptCreate) (model.Prompt, error) {
	if in.Status == "" {
		in.Status = model.StatusDraft
	}
	if !in.Status.Valid() {
		return model.Prompt{}, fmt.Errorf("status %q: %w", in.Status, ErrBadStatus)
	}

	projectID := in.ProjectID
	if projectID == nil || strings.TrimSpace(*projectID) == "" {
		defID, err := s.ensureDefaultProject(ctx)
		if err != nil {
			return model.Prompt{}, err
		}
		projectID = &defID
	} else {
		if _, err := s.GetProject(ctx, *projectID); err != nil {
			return model.Prompt{}, err
		}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = model.DeriveName(in.Content)
	}

	id, err := s.newID(ctx, "prm")
	if err != nil {
		return model.Prompt{}, err
	}

	// Append at the end of the global order.
	var next int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position)+1, 0) FROM prompts`).Scan(&next); err != nil {
		return model.Prompt{}, err
	}

	nowMs := time.Now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx, `INSERT INTO prompts(
		id, name, status, content, project_id, position, created_at_unixms, updated_at_unixms
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, string(in.Status), in.Content, *projectID, next, nowMs, nowMs)
	if err != nil {
		return model.Prompt{}, fmt.Errorf("creating prompt: %w", err)
	}
	return s.GetPrompt(ctx, id)
}

func (s *Store) UpdatePrompt(ctx context.Context, id string, upd PromptUpdate) (model.Prompt, error) {
	cur, err := s.GetPrompt(ctx, id)
	if err != nil {
		return model.Prompt{}, err
	}
	if upd.Name != nil {
		cur.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return model.Prompt{}, fmt.Errorf("status %q: %w", *upd.Status, ErrBadStatus)
		}
		cur.Status = *upd.Status
	}
	if upd.Content != nil {
		cur.Content = *upd.Content
	}
	if upd.ProjectID != nil && strings.TrimSpace(*upd.ProjectID) != "" {
		if _, err := s.GetProject(ctx, *upd.ProjectID); err != nil {
			return model.Prompt{}, err
		}
		cur.ProjectID = upd.ProjectID
	}
	if cur.Name == "" {
		cur.Name = model.DeriveName(cur.Content)
	}

	nowMs := time.Now().UTC().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		`UPDATE prompts SET name = ?, status = ?, content = ?, project_id = ?, updated_at_unixms = ? WHERE id = ?`,
		cur.Name, string(cur.Status), cur.Content, cur.ProjectID, nowMs, id)
	if err != nil {
		return model.Prompt{}, fmt.Errorf("updating prompt: %w", err)
	}
	return s.GetPrompt(ctx, id)
}

func (s *Store) DeletePrompt(ctx context.Context, id string) error {
	if _, err := s.GetPrompt(ctx, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM prompts WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting prompt: %w", err)
	}
	return nil
}

// ReorderPrompts rewrites positions to follow the given id sequence
// (0..n-1). Every id must exist; prompts not mentioned keep their positions.
// All-or-nothing.
func (s *Store) ReorderPrompts(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	nowMs := time.Now().UTC().UnixMilli()
	for i, id := range ids {
		res, err := tx.ExecContext(ctx,
			`UPDATE prompts SET position = ?, updated_at_unixms = ? WHERE id = ?`, i, nowMs, id)
		if err != nil {
			return fmt.Errorf("reordering prompts: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("prompt %s: %w", id, ErrNotFound)
		}
	}
	return tx.Commit()
}

func scanPrompt(row rowScanner) (model.Prompt, error) {
	var (
		p                    model.Prompt
		status               string
		projectID, projName  sql.NullString
		createdMs, updatedMs int64
	)
	if err := row.Scan(&p.ID, &p.Name, &status, &p.Content, &projectID, &projName, &p.Order, &createdMs, &updatedMs); err != nil {
		return model.Prompt{}, err
	}
	p.Status = model.Status(status)
	if projectID.Valid {
		v := projectID.String
		p.ProjectID = &v
	}
	p.ProjectName = projName.String
	p.CreatedAt = msToTime(createdMs)
	p.UpdatedAt = msToTime(updatedMs)
	return p, nil
}
