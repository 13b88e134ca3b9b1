package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// BrowseFile is the optional per-user TOML file for the terminal browser.
// Zero values leave the environment-derived settings untouched.
type BrowseFile struct {
	CatalogBaseURL string `toml:"catalog_base_url"`
	BackendURL     string `toml:"backend_url"`
	DefaultUserID  int    `toml:"default_user_id"`
	SearchDebounce string `toml:"search_debounce"`
	CacheRedisURL  string `toml:"cache_redis_url"`
	LogLevel       string `toml:"log_level"`
	LogFile        string `toml:"log_file"`
}

// DefaultBrowseFilePath returns $XDG_CONFIG_HOME/starred/config.toml.
func DefaultBrowseFilePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "starred", "config.toml")
}

// ApplyBrowseFile overlays the TOML file at path onto cfg.
// A missing file is not an error.
func (c *Config) ApplyBrowseFile(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var f BrowseFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if f.CatalogBaseURL != "" {
		c.CatalogBaseURL = f.CatalogBaseURL
	}
	if f.BackendURL != "" {
		c.BackendURL = f.BackendURL
	}
	if f.DefaultUserID > 0 {
		c.DefaultUserID = f.DefaultUserID
	}
	if f.SearchDebounce != "" {
		d, err := time.ParseDuration(f.SearchDebounce)
		if err != nil {
			return fmt.Errorf("parse search_debounce: %w", err)
		}
		c.SearchDebounce = d
	}
	if f.CacheRedisURL != "" {
		c.CacheRedisURL = f.CacheRedisURL
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	if f.LogFile != "" {
		c.LogFile = f.LogFile
	}
	return nil
}
