// Package pack reads and writes prompt packs: YAML documents that carry a
// set of prompts between Inkwell installs (`inkwell prompts export` /
// `inkwell prompts import`).
package pack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"inkwell/internal/model"
)

// Pack is one shareable set of prompts.
type Pack struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Prompts     []Entry `yaml:"prompts"`
}

// Entry is one prompt inside a pack. Name and Status may be empty; the
// importer falls back to a derived name and draft status, same as the API.
type Entry struct {
	Name    string       `yaml:"name,omitempty"`
	Status  model.Status `yaml:"status,omitempty"`
	Content string       `yaml:"content"`
}

// Decode parses a pack with strict field checking. Any YAML key that does
// not map to a known field is an error, so typos in hand-written packs
// surface instead of silently dropping data.
func Decode(r io.Reader) (*Pack, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var p Pack
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("pack: empty document")
		}
		return nil, fmt.Errorf("pack: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Pack) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("pack: name is required")
	}
	for i, e := range p.Prompts {
		if e.Status != "" && !e.Status.Valid() {
			return fmt.Errorf("pack: prompt %d: invalid status %q", i+1, e.Status)
		}
		if strings.TrimSpace(e.Name) == "" && strings.TrimSpace(e.Content) == "" {
			return fmt.Errorf("pack: prompt %d: needs a name or content", i+1)
		}
	}
	return nil
}

// Encode writes the pack as YAML. Content blocks use literal style where
// yaml.v3 chooses to, so exported packs stay hand-editable.
func Encode(w io.Writer, p *Pack) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	return enc.Close()
}

// FromPrompts builds a pack from stored prompts, keeping name, status and
// content and dropping everything install-specific (ids, projects, times).
func FromPrompts(name, description string, prompts []model.Prompt) *Pack {
	p := &Pack{Name: name, Description: description, Prompts: []Entry{}}
	for _, pr := range prompts {
		p.Prompts = append(p.Prompts, Entry{
			Name:    pr.Name,
			Status:  pr.Status,
			Content: pr.Content,
		})
	}
	return p
}

// ReadFile loads and validates a pack from disk.
func ReadFile(path string) (*Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(b))
}

// WriteFile writes a pack to disk, creating or truncating path.
func WriteFile(path string, p *Pack) error {
	var buf bytes.Buffer
	if err := Encode(&buf, p); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
