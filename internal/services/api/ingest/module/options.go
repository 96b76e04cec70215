package module

import (
	"vidqa/internal/platform/config"
)

// Options holds configuration options for the ingest API surface
type Options struct {
	// APIKey guards the ingest endpoints via the X-API-Key header.
	// Empty disables the check for local use
	APIKey string
}

// FromConfig reads the ingest API options from config with CORE_API_ prefix
func FromConfig(cfg config.Conf) Options {
	api := cfg.Prefix("CORE_API_")
	return Options{
		APIKey: api.MayString("INGEST_KEY", ""),
	}
}
