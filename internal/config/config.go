// Package config loads the optional ~/.paratrackz/config.yaml
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Paralinkz/ParaTrackz/internal/location"
	"github.com/Paralinkz/ParaTrackz/internal/parser"
)

// Config holds the few knobs the CLI exposes. Every field has a sensible
// default; a missing config file is not an error.
type Config struct {
	// DataDir holds the archive database and media blobs. Default ~/.paratrackz
	DataDir string `yaml:"data_dir"`

	// ExportDir receives export documents. Default: current directory.
	ExportDir string `yaml:"export_dir"`

	// Location is a static "lat,lon[,accuracy]" fix used to geotag evidence,
	// for hardware without a GPS receiver. PARATRACKZ_LOCATION overrides it.
	Location string `yaml:"location"`
}

// Load reads the config file, applying defaults for anything unset
func Load() (*Config, error) {
	cfg := &Config{ExportDir: "."}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	cfg.DataDir = filepath.Join(homeDir, ".paratrackz")

	data, err := os.ReadFile(filepath.Join(cfg.DataDir, "config.yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(homeDir, ".paratrackz")
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	return cfg, nil
}

// DatabasePath returns the archive database location
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "paratrackz.db")
}

// MediaDir returns the blob store location
func (c *Config) MediaDir() string {
	return filepath.Join(c.DataDir, "media")
}

// LocationProvider builds the startup location source: the environment
// override when set, then the configured static fix, then nothing
func (c *Config) LocationProvider() location.Provider {
	var fallback location.Provider = location.None{}
	if c.Location != "" {
		if coord, err := parser.ParseCoordinate(c.Location); err == nil {
			fallback = location.Static{Coord: *coord}
		}
	}
	return location.FromEnvironment(fallback)
}
