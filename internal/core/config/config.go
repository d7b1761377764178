// Package config handles configuration loading and validation for xfind.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/xfind/internal/core/styles"
)

// Config holds the application configuration.
type Config struct {
	Roots     []string     `yaml:"roots"`     // directories scanned for files
	Ignore    []string     `yaml:"ignore"`    // doublestar patterns, relative to each root
	Gitignore bool         `yaml:"gitignore"` // also honour .gitignore files found while scanning
	Watch     bool         `yaml:"watch"`     // keep the file list current while the TUI runs
	Finder    FinderConfig `yaml:"finder"`
	TUI       TUIConfig    `yaml:"tui"`
	DataDir   string       `yaml:"-"` // set by caller, not from config file
}

// FinderConfig controls the file finder modal.
type FinderConfig struct {
	// MaxResults caps the number of rows handed to the finder. Zero means unlimited.
	MaxResults int `yaml:"max_results"`
	// Uncontrolled leaves the input text to the widget instead of binding it
	// to the store's query.
	Uncontrolled bool   `yaml:"uncontrolled"`
	Placeholder  string `yaml:"placeholder"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme string `yaml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Roots:     []string{"."},
		Ignore:    []string{".git/**", "node_modules/**"},
		Gitignore: true,
		Watch:     true,
		Finder: FinderConfig{
			MaxResults:  200,
			Placeholder: "Find file...",
		},
		TUI: TUIConfig{
			Theme: styles.DefaultTheme,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.DataDir = dataDir
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if len(c.Roots) == 0 {
		c.Roots = defaults.Roots
	}
	if c.Finder.Placeholder == "" {
		c.Finder.Placeholder = defaults.Finder.Placeholder
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if len(c.Roots) == 0 {
		return fmt.Errorf("roots must list at least one directory")
	}

	for i, root := range c.Roots {
		if root == "" {
			return fmt.Errorf("roots[%d] cannot be empty", i)
		}
	}

	if c.Finder.MaxResults < 0 {
		return fmt.Errorf("finder.max_results cannot be negative")
	}

	if _, ok := styles.GetPalette(c.TUI.Theme); !ok {
		return fmt.Errorf("tui.theme %q is not a known theme (available: %s)", c.TUI.Theme, strings.Join(styles.ThemeNames(), ", "))
	}

	return nil
}

// AbsRoots returns the configured roots as absolute, cleaned paths.
func (c *Config) AbsRoots() ([]string, error) {
	roots := make([]string, 0, len(c.Roots))
	for _, root := range c.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolve root %q: %w", root, err)
		}
		roots = append(roots, abs)
	}
	return roots, nil
}
