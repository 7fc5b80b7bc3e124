// Package preview contiene el controller de render de templates.
package preview

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/boletera/internal/http/dto/preview"
	"github.com/dropDatabas3/boletera/internal/http/helpers"
	svc "github.com/dropDatabas3/boletera/internal/http/services/preview"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

// PreviewController maneja POST /v1/preview/{template}.
type PreviewController struct {
	service svc.PreviewService
}

// NewPreviewController crea el controller.
func NewPreviewController(service svc.PreviewService) *PreviewController {
	return &PreviewController{service: service}
}

// Render decodifica el movimiento y devuelve el email renderizado.
func (c *PreviewController) Render(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	template := chi.URLParam(r, "template")
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("PreviewController.Render"))

	var req dto.PreviewRequest
	if !helpers.ReadJSON(w, r, &req) {
		return
	}

	resp, err := c.service.Render(ctx, template, req)
	switch {
	case err == nil:
		helpers.WriteJSON(w, http.StatusOK, resp)
	case errors.Is(err, svc.ErrUnknownTemplate):
		helpers.WriteError(w, helpers.ErrUnknownTemplate.WithDetail(template))
	case errors.Is(err, svc.ErrMissingMovement), errors.Is(err, svc.ErrInvalidCount):
		helpers.WriteError(w, helpers.ErrBadRequest.WithDetail(err.Error()))
	default:
		log.Error("preview render failed", logger.Err(err))
		helpers.WriteError(w, helpers.ErrInternalServerError)
	}
}
