package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/TilePlan/internal/pattern"
)

// AppConfig holds user-level application settings persisted between runs.
// All lengths are stored in millimeters (tenths for the gap) because this is
// user input, not layout geometry.
type AppConfig struct {
	DefaultTileWidthMM  int64           `json:"default_tile_width_mm"`
	DefaultTileHeightMM int64           `json:"default_tile_height_mm"`
	DefaultGapTenthMM   int64           `json:"default_gap_tenth_mm"`
	DefaultPattern      pattern.Pattern `json:"default_pattern"`
	MaxHistory          int             `json:"max_history"`
	RecentProjects      []string        `json:"recent_projects"`
}

// DefaultAppConfig returns the settings used before the user changes anything.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultTileWidthMM:  600,
		DefaultTileHeightMM: 600,
		DefaultGapTenthMM:   20, // 2 mm grout
		DefaultPattern:      pattern.LinearSquare,
		MaxHistory:          50,
		RecentProjects:      []string{},
	}
}

// DefaultConfigDir returns the default directory for application
// configuration. On all platforms this is ~/.tileplan/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".tileplan")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultAppConfig(), nil
		}
		return AppConfig{}, err
	}
	var config AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return AppConfig{}, err
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// maxRecentProjects bounds the recent project list.
const maxRecentProjects = 10

// AddRecentProject moves path to the front of the recent list, dropping
// duplicates and trimming to the bound.
func (c *AppConfig) AddRecentProject(path string) {
	out := []string{path}
	for _, p := range c.RecentProjects {
		if p != path && len(out) < maxRecentProjects {
			out = append(out, p)
		}
	}
	c.RecentProjects = out
}
