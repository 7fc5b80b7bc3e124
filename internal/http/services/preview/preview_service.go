// Package preview renderiza los templates de email sin enviarlos.
package preview

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/dropDatabas3/boletera/internal/email"
	dto "github.com/dropDatabas3/boletera/internal/http/dto/preview"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

var (
	ErrUnknownTemplate = email.ErrUnknownTemplate
	ErrMissingMovement = errors.New("preview: movement id is required")
	ErrInvalidCount    = errors.New("preview: ticket_count must be >= 0")
)

var validate = validator.New()

// PreviewService define el render de templates.
type PreviewService interface {
	Render(ctx context.Context, template string, req dto.PreviewRequest) (dto.PreviewResponse, error)
}

type previewService struct{}

// NewPreviewService crea el service.
func NewPreviewService() PreviewService {
	return previewService{}
}

func (previewService) Render(ctx context.Context, template string, req dto.PreviewRequest) (dto.PreviewResponse, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Op("PreviewService.Render"),
		logger.String("template", template),
	)

	if err := validate.Var(req.Movement.ID, "required"); err != nil {
		return dto.PreviewResponse{}, ErrMissingMovement
	}
	if err := validate.Var(req.TicketCount, "gte=0"); err != nil {
		return dto.PreviewResponse{}, ErrInvalidCount
	}

	subject, body, err := email.Preview(template, req.Movement, req.TicketCount, req.PDFURL)
	if err != nil {
		return dto.PreviewResponse{}, err
	}

	log.Debug("template rendered", logger.MovementID(req.Movement.ID), logger.Int("html_bytes", len(body)))
	return dto.PreviewResponse{Template: template, Subject: subject, HTML: body}, nil
}
