// Package config handles configuration loading and shared defaults.
package config

import (
	"os"

	"github.com/woozymasta/geoprop/internal/geo"

	"gopkg.in/yaml.v3"
)

// Fallback is the viewport used when a selection has no usable geometry.
type Fallback struct {
	Lat  float64 `yaml:"lat,omitempty" json:"lat"`
	Lon  float64 `yaml:"lon,omitempty" json:"lon"`
	Zoom int     `yaml:"zoom,omitempty" json:"zoom"`
}

// Config represents the root configuration file structure. Every field is
// optional; zero values are replaced by the built-in defaults.
type Config struct {
	MaxUploadBytes      int64    `yaml:"max_upload_bytes,omitempty" json:"max_upload_bytes"`
	DefaultFilterColumn string   `yaml:"default_filter_column,omitempty" json:"default_filter_column"`
	ExportCompact       bool     `yaml:"export_compact,omitempty" json:"export_compact"`
	Fallback            Fallback `yaml:"fallback,omitempty" json:"fallback"`
}

// Default returns the built-in configuration used when no file is given.
func Default() *Config {
	return &Config{
		MaxUploadBytes:      10 << 20,
		DefaultFilterColumn: "name",
		Fallback:            Fallback{Lat: 0, Lon: 0, Zoom: 2},
	}
}

// Load reads and parses the YAML configuration file from the specified path
// and fills in defaults for anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.DefaultFilterColumn == "" {
		cfg.DefaultFilterColumn = "name"
	}
	if cfg.Fallback.Zoom <= 0 {
		cfg.Fallback.Zoom = 2
	}

	return &cfg, nil
}

// Viewport returns the configured fallback viewport.
func (c *Config) Viewport() geo.Viewport {
	return geo.Viewport{Lat: c.Fallback.Lat, Lon: c.Fallback.Lon, Zoom: c.Fallback.Zoom}
}
