package middleware

import (
	"net/http"

	"cinedex/internal/platform/logger"
	pnet "cinedex/internal/platform/net"
)

// RequestScoped copies the request id onto the logger context so
// logger.C(ctx) emits request_id on every line, and mirrors the id
// back on the response header
func RequestScoped() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if reqID := pnet.RequestID(r.Context()); reqID != "" {
				r = r.WithContext(logger.WithRequest(r.Context(), reqID))
				w.Header().Set("X-Request-ID", reqID)
			}
			next.ServeHTTP(w, r)
		})
	}
}
