// Package health contiene DTOs para el endpoint de readiness.
package health

import "time"

const (
	StatusOK    = "ok"
	StatusError = "error"

	StatusReady       = "ready"
	StatusUnavailable = "unavailable"
)

// HealthStatus representa el estado de un componente.
type HealthStatus struct {
	Status  string `json:"status"`            // "ok" | "error"
	Message string `json:"message,omitempty"` // detalle opcional
}

// HealthResponse es la respuesta de GET /readyz.
type HealthResponse struct {
	Status     string                  `json:"status"` // "ready" | "unavailable"
	Components map[string]HealthStatus `json:"components"`
	Version    string                  `json:"version,omitempty"`
	Timestamp  time.Time               `json:"timestamp"`
}
