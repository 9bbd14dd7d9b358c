package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ashureev/learnzverse/internal/logging"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger attaches base, tagged with the chi request ID, to every
// request context. Handlers read it back with logging.From.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := base
			if id := chiMiddleware.GetReqID(r.Context()); id != "" {
				logger = logger.With("request_id", id)
			}
			next.ServeHTTP(w, r.WithContext(logging.With(r.Context(), logger)))
		})
	}
}
