package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/TilePlan/internal/editing"
	"github.com/piwi3910/TilePlan/internal/history"
	"github.com/piwi3910/TilePlan/internal/layout"
	"github.com/piwi3910/TilePlan/internal/pattern"
)

func sampleProject() Project {
	p := NewProject("Bathroom")
	p.Input = layout.Input{
		AreaWidth:  3_000_000,
		AreaHeight: 2_000_000,
		TileWidth:  600_000,
		TileHeight: 600_000,
		Gap:        2_000,
		Horizontal: layout.AlignLeft,
		Vertical:   layout.AlignTop,
		Pattern:    pattern.RunningBondSquare,
	}
	p.Shapes = []editing.Shape{
		{
			ID:            "shape01",
			Kind:          editing.ShapeRectangle,
			Origin:        editing.Point{X: 10_000, Y: 10_000},
			Width:         50_000,
			Height:        50_000,
			AffectedCells: []string{"cell0001"},
			Active:        true,
		},
	}
	return p
}

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bathroom"+FileExtension)
	p := sampleProject()

	res, err := layout.Compute(p.Input)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	p.Result = res

	if err := Save(path, p); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "Bathroom" {
		t.Errorf("expected name Bathroom, got %s", loaded.Name)
	}
	if loaded.Input.Pattern != pattern.RunningBondSquare {
		t.Errorf("pattern did not round-trip: %s", loaded.Input.Pattern)
	}
	if loaded.Result == nil || loaded.Result.TotalTileCount != res.TotalTileCount {
		t.Error("result did not round-trip")
	}
	if len(loaded.Shapes) != 1 || loaded.Shapes[0].Kind != editing.ShapeRectangle {
		t.Error("shapes did not round-trip")
	}
}

func TestOpenEditorBoundsHistory(t *testing.T) {
	p := sampleProject()
	cfg := DefaultAppConfig()
	cfg.MaxHistory = 2

	ed, err := OpenEditor(&p, cfg)
	if err != nil {
		t.Fatalf("OpenEditor failed: %v", err)
	}
	if p.Result == nil {
		t.Fatal("expected OpenEditor to compute the missing layout")
	}

	for i := 0; i < 3; i++ {
		if _, err := ed.SetVisibility(p.Result.Cells[0][i].ID, false); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := ed.Undo(); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.Undo(); err != nil {
		t.Fatal(err)
	}
	if _, err := ed.Undo(); !errors.Is(err, history.ErrEmptyHistory) {
		t.Errorf("undo depth should be capped at 2, got %v", err)
	}
}

func TestOpenEditorInvalidInput(t *testing.T) {
	p := sampleProject()
	p.Input.TileWidth = 0
	if _, err := OpenEditor(&p, DefaultAppConfig()); !errors.Is(err, layout.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSaveRotatesBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p"+FileExtension)

	if err := Save(path, sampleProject()); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, sampleProject()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	backups := 0
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".bak") {
			backups++
		}
	}
	if backups != 1 {
		t.Errorf("expected 1 backup file, got %d", backups)
	}
}

func TestLoadMissingProject(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.tileplan"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadInvalidProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tileplan")
	if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for project without id")
	}
}

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := DefaultAppConfig()
	cfg.DefaultTileWidthMM = 300
	cfg.DefaultPattern = pattern.TraditionalHerringbone
	cfg.RecentProjects = []string{"/tmp/a.tileplan"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.DefaultTileWidthMM != 300 {
		t.Errorf("expected tile width 300, got %d", loaded.DefaultTileWidthMM)
	}
	if loaded.DefaultPattern != pattern.TraditionalHerringbone {
		t.Errorf("pattern did not round-trip: %s", loaded.DefaultPattern)
	}
	if len(loaded.RecentProjects) != 1 {
		t.Errorf("expected 1 recent project, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "none", "config.json"))
	if err != nil {
		t.Fatalf("expected defaults for missing file, got: %v", err)
	}
	defaults := DefaultAppConfig()
	if cfg.DefaultTileWidthMM != defaults.DefaultTileWidthMM {
		t.Errorf("expected default tile width %d, got %d", defaults.DefaultTileWidthMM, cfg.DefaultTileWidthMM)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects must never be nil")
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("not valid json{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadAppConfig(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("/tmp/a")
	cfg.AddRecentProject("/tmp/b")
	cfg.AddRecentProject("/tmp/a") // moves to front, no duplicate

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "/tmp/a" || cfg.RecentProjects[1] != "/tmp/b" {
		t.Errorf("unexpected order: %v", cfg.RecentProjects)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentProject(filepath.Join("/tmp", strings.Repeat("x", i+1)))
	}
	if len(cfg.RecentProjects) != 10 {
		t.Errorf("recent list should be capped at 10, got %d", len(cfg.RecentProjects))
	}
}
