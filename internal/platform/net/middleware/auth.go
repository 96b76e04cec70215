package middleware

import (
	"crypto/subtle"
	"net/http"

	pnet "vidqa/internal/platform/net"
)

// APIKey guards a route group with a shared key in the X-API-Key header.
// An empty configured key disables the check entirely
func APIKey(key string, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}
			got := r.Header.Get("X-API-Key")
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				write(w, http.StatusUnauthorized, map[string]any{
					"status_code": http.StatusUnauthorized,
					"status":      http.StatusText(http.StatusUnauthorized),
					"error":       "invalid api key",
					"request_id":  pnet.RequestID(r.Context()),
				})
				return
			}
			ctx := pnet.WithAPIClient(r.Context(), "ingest")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
