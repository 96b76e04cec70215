package middleware

import (
	"net/http"

	"vidqa/internal/platform/logger"
	pnet "vidqa/internal/platform/net"
)

// Logging stashes the chi request id on the logger context so that
// logger.C(ctx) emits request_id on every line downstream
func Logging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := pnet.RequestID(r.Context())
			ctx := logger.WithRequest(r.Context(), reqID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
