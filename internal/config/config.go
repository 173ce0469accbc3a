// Package config handles repository discovery and configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the repository configuration stored in .gramsheet/config.yaml.
// Relative paths are resolved against the repository root at load time.
type Config struct {
	BibPath     string `yaml:"bib_path"`     // bibliography .bib file
	SheetsDir   string `yaml:"sheets_dir"`   // directory of coded sheets
	CatalogPath string `yaml:"catalog_path"` // feature catalog TSV
}

const (
	GramsheetDir = ".gramsheet"
	ConfigFile   = "config.yaml"
	CacheDir     = "cache"
	DBFile       = "bib.db"
)

// Defaults applied when config.yaml omits a field.
const (
	DefaultBibPath     = "bibliography.bib"
	DefaultSheetsDir   = "sheets"
	DefaultCatalogPath = "features.tsv"
)

// GramsheetPath returns the .gramsheet directory for a repository root.
func GramsheetPath(root string) string {
	return filepath.Join(root, GramsheetDir)
}

// ConfigPath returns the config.yaml path for a repository root.
func ConfigPath(root string) string {
	return filepath.Join(root, GramsheetDir, ConfigFile)
}

// CachePath returns the cache directory for a repository root.
func CachePath(root string) string {
	return filepath.Join(root, GramsheetDir, CacheDir)
}

// DBPath returns the bibliography cache database path.
func DBPath(root string) string {
	return filepath.Join(root, GramsheetDir, CacheDir, DBFile)
}

// IsRepository checks whether root contains a gramsheet repository.
func IsRepository(root string) bool {
	info, err := os.Stat(GramsheetPath(root))
	return err == nil && info.IsDir()
}

// FindRepository walks up from start to find a gramsheet repository and
// returns its root.
func FindRepository(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	for {
		if IsRepository(abs) {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a gramsheet repository (no %s directory found)", GramsheetDir)
		}
		abs = parent
	}
}

// Load reads the configuration for the repository at root, applying
// defaults and resolving relative paths against root. A missing config
// file yields the defaults.
func Load(root string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(ConfigPath(root))
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if cfg.BibPath == "" {
		cfg.BibPath = DefaultBibPath
	}
	if cfg.SheetsDir == "" {
		cfg.SheetsDir = DefaultSheetsDir
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = DefaultCatalogPath
	}

	cfg.BibPath = resolve(root, cfg.BibPath)
	cfg.SheetsDir = resolve(root, cfg.SheetsDir)
	cfg.CatalogPath = resolve(root, cfg.CatalogPath)
	return cfg, nil
}

// Save writes the configuration to the repository at root.
func (c *Config) Save(root string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(GramsheetPath(root), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", GramsheetDir, err)
	}
	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
