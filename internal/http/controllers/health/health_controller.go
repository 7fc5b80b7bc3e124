package health

import (
	"net/http"

	dto "github.com/dropDatabas3/boletera/internal/http/dto/health"
	"github.com/dropDatabas3/boletera/internal/http/helpers"
	svc "github.com/dropDatabas3/boletera/internal/http/services/health"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

// HealthController maneja /readyz.
type HealthController struct {
	service svc.HealthService
}

// NewHealthController crea el controller.
func NewHealthController(service svc.HealthService) *HealthController {
	return &HealthController{service: service}
}

// Readyz maneja GET /readyz. 503 si algún componente no está listo.
func (c *HealthController) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("HealthController.Readyz"))

	response := c.service.Check(ctx)

	if response.Version != "" {
		w.Header().Set("X-Service-Version", response.Version)
	}

	statusCode := http.StatusOK
	if response.Status == dto.StatusUnavailable {
		statusCode = http.StatusServiceUnavailable
	}

	log.Debug("health check completed",
		logger.String("status", response.Status),
		logger.Int("components_count", len(response.Components)),
	)
	helpers.WriteJSON(w, statusCode, response)
}
