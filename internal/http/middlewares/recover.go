package middlewares

import (
	"net/http"

	"github.com/dropDatabas3/boletera/internal/http/helpers"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

// WithRecover convierte un panic del handler en un 500 JSON y lo loguea.
func WithRecover() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.From(r.Context()).Error("panic recovered",
						logger.Op("recover"),
						logger.Any("panic", rec),
					)
					helpers.WriteError(w, helpers.ErrInternalServerError.WithDetail("panic recovered"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
