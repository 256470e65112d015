package model

import "time"

type Status string

const (
	StatusDraft    Status = "draft"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusArchived
}

// DefaultProjectName is the reserved project every install has. It cannot
// be deleted; prompts whose project goes away are reassigned to it.
const DefaultProjectName = "Default"

type Project struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Whiteboard string    `json:"whiteboard"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Prompt struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Status    Status  `json:"status"`
	Content   string  `json:"content"`
	ProjectID *string `json:"project_id"`

	// Derived on read (join against projects); never stored.
	ProjectName string `json:"project_name,omitempty"`

	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
