package health

import (
	"context"
	"fmt"
	"os"
	"time"

	dto "github.com/dropDatabas3/boletera/internal/http/dto/health"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

// HealthService define las operaciones de readiness.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// FirebaseProbe es lo que el health necesita del conector de Firebase.
type FirebaseProbe interface {
	ProjectID() string
	Bucket() string
}

// EmailProbe es lo que el health necesita del notifier.
type EmailProbe interface {
	From() string
}

// Deps contiene las dependencias del health service. Un componente nil
// cuenta como no inicializado.
type Deps struct {
	Firebase FirebaseProbe
	Email    EmailProbe
}

type healthService struct {
	deps Deps
}

// NewHealthService crea el service de readiness.
func NewHealthService(deps Deps) HealthService {
	return &healthService{deps: deps}
}

const (
	componentHealth = "health"

	ComponentFirebase = "firebase"
	ComponentEmail    = "email"
)

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	response := dto.HealthResponse{
		Components: make(map[string]dto.HealthStatus, 2),
		Version:    os.Getenv("SERVICE_VERSION"),
		Timestamp:  time.Now().UTC(),
	}

	unavailable := false

	// 1) Firebase
	if s.deps.Firebase != nil {
		response.Components[ComponentFirebase] = dto.HealthStatus{
			Status:  dto.StatusOK,
			Message: fmt.Sprintf("project=%s bucket=%s", s.deps.Firebase.ProjectID(), s.deps.Firebase.Bucket()),
		}
	} else {
		response.Components[ComponentFirebase] = dto.HealthStatus{
			Status:  dto.StatusError,
			Message: "connector not initialized",
		}
		unavailable = true
		log.Warn("firebase connector not initialized")
	}

	// 2) Email
	if s.deps.Email != nil {
		response.Components[ComponentEmail] = dto.HealthStatus{
			Status:  dto.StatusOK,
			Message: "from=" + s.deps.Email.From(),
		}
	} else {
		response.Components[ComponentEmail] = dto.HealthStatus{
			Status:  dto.StatusError,
			Message: "notifier not initialized",
		}
		unavailable = true
		log.Warn("email notifier not initialized")
	}

	response.Status = dto.StatusReady
	if unavailable {
		response.Status = dto.StatusUnavailable
	}
	return response
}
