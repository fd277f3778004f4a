package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "name", cfg.DefaultFilterColumn)
	assert.False(t, cfg.ExportCompact)
	assert.Equal(t, 2, cfg.Fallback.Zoom)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("export_compact: true\n"), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.True(t, cfg.ExportCompact)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
	assert.Equal(t, "name", cfg.DefaultFilterColumn)
	assert.Equal(t, 2, cfg.Fallback.Zoom)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
max_upload_bytes: 1024
default_filter_column: title
fallback:
  lat: 46.8
  lon: 8.2
  zoom: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, int64(1024), cfg.MaxUploadBytes)
	assert.Equal(t, "title", cfg.DefaultFilterColumn)

	viewport := cfg.Viewport()
	assert.InDelta(t, 46.8, viewport.Lat, 1e-9)
	assert.InDelta(t, 8.2, viewport.Lon, 1e-9)
	assert.Equal(t, 7, viewport.Zoom)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_upload_bytes: [broken"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
