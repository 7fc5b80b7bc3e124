// Package health contiene el controller de readiness.
package health

import svc "github.com/dropDatabas3/boletera/internal/http/services/health"

// Controllers agrupa los controllers del dominio health.
type Controllers struct {
	Health *HealthController
}

// NewControllers crea el agregador de controllers health.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Health: NewHealthController(s.Health),
	}
}
