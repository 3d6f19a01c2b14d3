// Package config loads geomap settings from a TOML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Env variables that override file settings.
const (
	EnvLogLevel   = "GEOMAP_LOG_LEVEL"
	EnvSampleSize = "GEOMAP_SAMPLE_SIZE"
)

type Config struct {
	Log    Log    `toml:"log"`
	Ingest Ingest `toml:"ingest"`
	Export Export `toml:"export"`
	TUI    TUI    `toml:"tui"`
}

type Log struct {
	Level   string `toml:"level"`
	Console bool   `toml:"console"`
	File    string `toml:"file"`
}

type Ingest struct {
	SampleSize int `toml:"sample_size"`
}

type Export struct {
	Palette   string `toml:"palette"`
	Basemap   string `toml:"basemap"`
	MaxFields int    `toml:"max_fields"`
}

type TUI struct {
	CacheEntries int `toml:"cache_entries"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Log:    Log{Level: "info"},
		Ingest: Ingest{SampleSize: 50},
		Export: Export{Palette: "VIBRANT", Basemap: "POSITRON", MaxFields: 5},
		TUI:    TUI{CacheEntries: 16},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/geomap/config.toml, falling back to
// ~/.config/geomap/config.toml.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "geomap", "config.toml")
}

// Load reads path (DefaultPath when empty) over the defaults, then applies
// environment overrides. A missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(b, &cfg); err != nil {
				return Default(), fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnv()
	cfg.sanitize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSampleSize)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Ingest.SampleSize = n
		}
	}
}

// sanitize replaces out-of-range values with defaults.
func (c *Config) sanitize() {
	d := Default()
	if c.Ingest.SampleSize <= 0 {
		c.Ingest.SampleSize = d.Ingest.SampleSize
	}
	if c.Export.MaxFields <= 0 {
		c.Export.MaxFields = d.Export.MaxFields
	}
	if c.TUI.CacheEntries <= 0 {
		c.TUI.CacheEntries = d.TUI.CacheEntries
	}
	c.Export.Palette = strings.ToUpper(strings.TrimSpace(c.Export.Palette))
	if c.Export.Palette == "" {
		c.Export.Palette = d.Export.Palette
	}
	c.Export.Basemap = strings.ToUpper(strings.TrimSpace(c.Export.Basemap))
	if c.Export.Basemap == "" {
		c.Export.Basemap = d.Export.Basemap
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
