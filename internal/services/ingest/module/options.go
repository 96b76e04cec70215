package module

import (
	"time"

	"vidqa/internal/platform/config"
)

// Options holds configuration options for the ingest service
type Options struct {
	SkipClassification bool
	PreviewLength      int
	RequestDelay       time.Duration
	TaxonomyPath       string

	// YouTube adapter
	YouTubeAPIKey  string
	YouTubeRPS     int
	YouTubeRetries int
	YouTubeTimeout time.Duration

	// Gemini adapter
	GeminiAPIKey string
	GeminiModel  string
}

// FromConfig reads the ingest options from config with CORE_INGEST_ prefix
func FromConfig(cfg config.Conf) Options {
	in := cfg.Prefix("CORE_INGEST_")
	return Options{
		SkipClassification: in.MayBool("SKIP_CLASSIFICATION", false),
		PreviewLength:      in.MayInt("PREVIEW_LENGTH", 0),
		RequestDelay:       in.MayDuration("REQUEST_DELAY", time.Second),
		TaxonomyPath:       in.MayString("TAXONOMY_PATH", "taxonomy.yaml"),
		YouTubeAPIKey:      in.MayString("YOUTUBE_API_KEY", cfg.MayString("YOUTUBE_API_KEY", "")),
		YouTubeRPS:         in.MayInt("YOUTUBE_RPS", 4),
		YouTubeRetries:     in.MayInt("YOUTUBE_RETRIES", 4),
		YouTubeTimeout:     in.MayDuration("YOUTUBE_TIMEOUT", 15*time.Second),
		GeminiAPIKey:       in.MayString("GEMINI_API_KEY", cfg.MayString("GEMINI_API_KEY", "")),
		GeminiModel:        in.MayString("GEMINI_MODEL", ""),
	}
}
