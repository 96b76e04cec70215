package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "vidqa/internal/platform/net/http"
	"vidqa/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with the api key middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.Logging(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// APIKey wires the api key middleware to the platform JSON writer
func APIKey(key string) func(http.Handler) http.Handler {
	return middleware.APIKey(key, phttp.JSON)
}
