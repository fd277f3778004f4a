package server

import (
	"github.com/rs/zerolog/log"

	"github.com/woozymasta/geoprop/assets"
	"github.com/woozymasta/geoprop/internal/config"
)

// ServerContext holds dependencies for request handlers. Handlers keep no
// state between requests: every request carries its own GeoJSON payload, so
// concurrent requests never share a mutable collection.
type ServerContext struct {
	Config    *config.Config
	IndexHTML []byte
	Favicon   []byte
}

// NewServerContext initializes the context from the loaded configuration.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().
		Int64("max_upload_bytes", cfg.MaxUploadBytes).
		Str("default_filter_column", cfg.DefaultFilterColumn).
		Bool("export_compact", cfg.ExportCompact).
		Msg("Initializing server context")

	return &ServerContext{
		Config:    cfg,
		IndexHTML: assets.Index,
		Favicon:   assets.Favicon,
	}
}
