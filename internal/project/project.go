// Package project persists tile projects and application configuration as
// JSON files. The core value objects are plain integers, strings, and enums
// with no cyclic references, so the stdlib codec round-trips them unchanged.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/TilePlan/internal/editing"
	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/materials"
)

// FileExtension is the project file suffix.
const FileExtension = ".tileplan"

// Project ties one surface's input, computed grid, and editing shapes
// together for save/load.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	Input  layout.Input   `json:"input"`
	Result *layout.Result `json:"result,omitempty"`

	Shapes    []editing.Shape      `json:"shapes,omitempty"`
	Junctions []materials.Junction `json:"junctions,omitempty"`
	Corners   []materials.Corner   `json:"corners,omitempty"`
}

// NewProject returns an empty named project.
func NewProject(name string) Project {
	if name == "" {
		name = "Untitled"
	}
	return Project{
		ID:        uuid.New().String()[:8],
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// OpenEditor prepares a project for editing: the layout is computed if it was
// never stored, and the undo history is bounded by the configured limit.
func OpenEditor(p *Project, cfg AppConfig) (*editing.Editor, error) {
	if p.Result == nil {
		res, err := layout.Compute(p.Input)
		if err != nil {
			return nil, fmt.Errorf("computing layout for %q: %w", p.Name, err)
		}
		p.Result = res
	}
	return editing.NewEditor(p.Result, cfg.MaxHistory), nil
}

// Save writes the project as indented JSON, rotating any existing file to a
// timestamped .bak first so a bad write never destroys the previous state.
func Save(path string, p Project) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		bak := path + "." + time.Now().UTC().Format("20060102T150405") + ".bak"
		if err := os.Rename(path, bak); err != nil {
			return fmt.Errorf("failed to rotate backup: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project file.
func Load(path string) (Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.ID == "" {
		return Project{}, fmt.Errorf("invalid project file: missing id field")
	}
	return p, nil
}
