package config

import (
	"fmt"
	"os"
	"path/filepath"

	"iconview/internal/catalog"
	"iconview/internal/models"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Theme          string            `yaml:"theme"                     env:"ICONVIEW_THEME"`                          // Icon theme name (empty = detect)
	IconSize       int               `yaml:"icon_size"                 env:"ICONVIEW_ICON_SIZE"`                      // Lookup size in pixels
	SearchPaths    []string          `yaml:"search_paths,omitempty"    env:"ICONVIEW_SEARCH_PATHS"    envSeparator:":"` // Theme base dirs (empty = XDG defaults)
	SearchTags     bool              `yaml:"search_tags"               env:"ICONVIEW_SEARCH_TAGS"`                    // Match search text against tags too
	SymlinkFilter  models.FilterMode `yaml:"symlink_filter"            env:"ICONVIEW_SYMLINK_FILTER"`
	SymbolicFilter models.FilterMode `yaml:"symbolic_filter"           env:"ICONVIEW_SYMBOLIC_FILTER"`
	ShowDangling   bool              `yaml:"show_dangling"             env:"ICONVIEW_SHOW_DANGLING"`
	Categories     []string          `yaml:"categories,omitempty"      env:"ICONVIEW_CATEGORIES"      envSeparator:","` // Included categories (empty = all)
	CategoriesFile string            `yaml:"categories_file,omitempty" env:"ICONVIEW_CATEGORIES_FILE"`                // Category definitions (empty = default path)
	AliasBatchSize int               `yaml:"alias_batch_size"          env:"ICONVIEW_ALIAS_BATCH_SIZE"`
	Workers        int               `yaml:"workers"                   env:"ICONVIEW_WORKERS"` // Lookup workers (0 = by CPU count)
	Editor         string            `yaml:"editor"                    env:"ICONVIEW_EDITOR"`  // Application icons are opened in (auto = detect)
	LogFile        string            `yaml:"log_file"                  env:"ICONVIEW_LOG_FILE"`
	LogLevel       string            `yaml:"log_level"                 env:"ICONVIEW_LOG_LEVEL"`
	FirstRun       bool              `yaml:"-"` // Is this the first run?
}

// configFileName is the name of the config file
const configFileName = "config.yaml"

// Default returns the default configuration
func Default() *Config {
	return &Config{
		IconSize:       catalog.DefaultSize,
		SearchTags:     true,
		SymlinkFilter:  models.DefaultSymlinkMode,
		SymbolicFilter: models.DefaultSymbolicMode,
		AliasBatchSize: catalog.DefaultBatchSize,
		Editor:         "auto",
		LogFile:        filepath.Join(CacheDir(), "iconview.log"),
		LogLevel:       "warn",
		FirstRun:       true,
	}
}

// ConfigDir returns the directory containing iconview config files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "iconview")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// CacheDir returns the directory for logs and other disposable files
func CacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		homeDir, _ := os.UserHomeDir()
		dir = filepath.Join(homeDir, ".cache")
	}
	return filepath.Join(dir, "iconview")
}

// Load loads the configuration from the default file and applies
// environment overrides
func Load() (*Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile loads the configuration from path and applies environment
// overrides. A missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run - keep defaults
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
		cfg.FirstRun = false
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces out of range values with defaults
func (c *Config) normalize() {
	def := Default()
	if c.IconSize <= 0 {
		c.IconSize = def.IconSize
	}
	if c.AliasBatchSize <= 0 {
		c.AliasBatchSize = def.AliasBatchSize
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.Editor == "" {
		c.Editor = def.Editor
	}
	if c.LogFile == "" {
		c.LogFile = def.LogFile
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Save saves the configuration to the default file
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo saves the configuration to path
func (c *Config) SaveTo(path string) error {
	// Create config directory
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CategoriesPath returns the category definitions file
func (c *Config) CategoriesPath() string {
	if c.CategoriesFile != "" {
		return c.CategoriesFile
	}
	return filepath.Join(ConfigDir(), "categories.yaml")
}
