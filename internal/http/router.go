package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	healthctrl "github.com/dropDatabas3/boletera/internal/http/controllers/health"
	previewctrl "github.com/dropDatabas3/boletera/internal/http/controllers/preview"
	"github.com/dropDatabas3/boletera/internal/http/helpers"
	mw "github.com/dropDatabas3/boletera/internal/http/middlewares"
	healthsvc "github.com/dropDatabas3/boletera/internal/http/services/health"
	previewsvc "github.com/dropDatabas3/boletera/internal/http/services/preview"
)

// RouterDeps contiene las dependencias del router de ops.
type RouterDeps struct {
	Firebase healthsvc.FirebaseProbe
	Email    healthsvc.EmailProbe

	// MetricsHandler sirve /metrics. nil => la ruta no se monta.
	MetricsHandler http.Handler
}

// NewRouter arma el router de ops:
//
//	GET  /readyz
//	GET  /metrics
//	POST /v1/preview/{template}
//
// No hay ruta de envío: los emails sólo salen desde el código de órdenes o el CLI.
func NewRouter(deps RouterDeps) http.Handler {
	health := healthctrl.NewControllers(healthsvc.NewServices(healthsvc.Deps{
		Firebase: deps.Firebase,
		Email:    deps.Email,
	}))
	preview := previewctrl.NewPreviewController(previewsvc.NewPreviewService())

	r := chi.NewRouter()
	r.Use(mw.WithRecover(), mw.WithRequestID())
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteError(w, helpers.ErrNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteError(w, helpers.ErrMethodNotAllowed)
	})

	// Health y métricas sin logging de request (muy frecuentes).
	r.Get("/readyz", health.Health.Readyz)
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(mw.WithLogging(), WithMetrics)
		r.Post("/v1/preview/{template}", preview.Render)
	})

	return r
}
