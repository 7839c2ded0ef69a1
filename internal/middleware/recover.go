package middleware

import (
	"log/slog"
	"net/http"
)

// Recover is the outermost boundary for unclassified failures: panics are
// logged with full detail server-side and surfaced as a generic envelope.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Panic recovered",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"success":false,"error":{"code":"internal_error","message":"An unexpected error occurred"}}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
