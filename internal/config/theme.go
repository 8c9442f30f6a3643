package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Theme defines the dashboard color palette. Colors are tcell color names or
// #rrggbb strings; mapping to actual colors happens in the TUI layer.
type Theme struct {
	Name   string      `yaml:"name"`
	Colors ThemeColors `yaml:"colors"`
}

// ThemeColors names every themable surface.
type ThemeColors struct {
	Title  string `yaml:"title"`
	Border string `yaml:"border"`
	Text   string `yaml:"text"`
	Accent string `yaml:"accent"`
	Unread string `yaml:"unread"`

	// Per-category colors keyed by category name
	Categories map[string]string `yaml:"categories"`

	// Status bar colors per notification level
	StatusInfo    string `yaml:"status_info"`
	StatusSuccess string `yaml:"status_success"`
	StatusWarning string `yaml:"status_warning"`
	StatusError   string `yaml:"status_error"`
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "default",
		Colors: ThemeColors{
			Title:  "aqua",
			Border: "gray",
			Text:   "white",
			Accent: "teal",
			Unread: "yellow",
			Categories: map[string]string{
				"applied":     "blue",
				"interviewed": "aqua",
				"offers":      "green",
				"rejected":    "red",
				"irrelevant":  "gray",
			},
			StatusInfo:    "white",
			StatusSuccess: "green",
			StatusWarning: "yellow",
			StatusError:   "red",
		},
	}
}

// ThemeLoader loads YAML themes from a directory
type ThemeLoader struct {
	themesDir string
}

// NewThemeLoader creates a new theme loader
func NewThemeLoader(themesDir string) *ThemeLoader {
	return &ThemeLoader{themesDir: themesDir}
}

// Load resolves a theme by name. "default" and "" return the built-in
// palette without touching the filesystem; anything else loads
// <themesDir>/<name>.yaml merged over the defaults.
func (tl *ThemeLoader) Load(name string) (*Theme, error) {
	if name == "" || name == "default" {
		return DefaultTheme(), nil
	}

	path := filepath.Join(tl.themesDir, name+".yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", name, err)
	}

	theme := DefaultTheme()
	theme.Name = name
	if err := yaml.Unmarshal(data, theme); err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", name, err)
	}
	return theme, nil
}

// ListAvailable returns the names of the themes in the themes directory,
// plus the built-in default.
func (tl *ThemeLoader) ListAvailable() ([]string, error) {
	names := []string{"default"}

	entries, err := os.ReadDir(tl.themesDir)
	if os.IsNotExist(err) {
		return names, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		names = append(names, entry.Name()[:len(entry.Name())-len(".yaml")])
	}
	return names, nil
}

// Save writes a theme to <themesDir>/<name>.yaml
func (tl *ThemeLoader) Save(theme *Theme) error {
	if theme == nil || theme.Name == "" {
		return fmt.Errorf("theme needs a name")
	}
	if err := os.MkdirAll(tl.themesDir, 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(theme)
	if err != nil {
		return fmt.Errorf("marshal theme: %w", err)
	}
	return os.WriteFile(filepath.Join(tl.themesDir, theme.Name+".yaml"), data, 0o644)
}
