// Package preview contiene DTOs para el render de templates de email.
package preview

import "github.com/dropDatabas3/boletera/internal/domain/movement"

// PreviewRequest es el body de POST /v1/preview/{template}.
type PreviewRequest struct {
	Movement    movement.Movement `json:"movement"`
	TicketCount int               `json:"ticket_count,omitempty"` // sólo tickets
	PDFURL      string            `json:"pdf_url,omitempty"`      // sólo tickets
}

// PreviewResponse devuelve el email renderizado, sin enviarlo.
type PreviewResponse struct {
	Template string `json:"template"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
}
