// Package email envía los emails transaccionales de la boletera:
// boletos en PDF adjuntos y aviso de pago confirmado.
//
//	┌──────────────────────────────┐
//	│ flujo de órdenes / CLI       │
//	└──────────────┬───────────────┘
//	               ▼
//	┌──────────────────────────────┐     GET fileURL
//	│ Notifier                     │ ──────────────────▶ host del PDF
//	│  SendTicketWithAttachment    │
//	│  SendPaymentConfirmation     │
//	└──────────────┬───────────────┘
//	               ▼
//	┌──────────────────────────────┐     POST /v3/mail/send
//	│ Sender (SendGridSender)      │ ──────────────────▶ SendGrid
//	└──────────────────────────────┘
//
// Cada envío es un único intento: los errores se loguean y se devuelven al
// caller sin envolver.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dropDatabas3/boletera/internal/config"
	"github.com/dropDatabas3/boletera/internal/domain/movement"
	"github.com/dropDatabas3/boletera/internal/metrics"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
	"github.com/dropDatabas3/boletera/internal/util"
)

// ─── Errors ───

var (
	ErrConfig            = errors.New("email: invalid configuration")
	ErrMissingAPIKey     = fmt.Errorf("%w: SENDGRID_API_KEY environment variable is required", ErrConfig)
	ErrInvalidInput      = errors.New("email: invalid input")
	ErrMissingBuyerEmail = fmt.Errorf("%w: no buyer email found for movement", ErrInvalidInput)
)

var validate = validator.New()

// ─── Notifier ───

// Notifier arma y envía los emails. Sólo guarda configuración inmutable,
// así que puede usarse desde varias goroutines sin locks.
type Notifier struct {
	sender     Sender
	from       string
	httpClient *http.Client
}

// Option modifica un Notifier en construcción.
type Option func(*Notifier)

// WithSender reemplaza el SendGridSender por defecto.
func WithSender(s Sender) Option {
	return func(n *Notifier) {
		if s != nil {
			n.sender = s
		}
	}
}

// WithHTTPClient define el cliente usado para descargar los PDFs.
func WithHTTPClient(c *http.Client) Option {
	return func(n *Notifier) {
		if c != nil {
			n.httpClient = c
		}
	}
}

// NewNotifier valida la configuración y crea el Notifier.
// Sin SENDGRID_API_KEY retorna ErrMissingAPIKey.
func NewNotifier(cfg config.Email, opts ...Option) (*Notifier, error) {
	apiKey := strings.TrimSpace(cfg.SendGridAPIKey)
	if err := validate.Var(apiKey, "required"); err != nil {
		return nil, ErrMissingAPIKey
	}

	from := strings.TrimSpace(cfg.FromEmail)
	if from == "" {
		from = config.DefaultFromEmail
	}

	n := &Notifier{
		sender:     NewSendGridSender(apiKey, cfg.SendGridAPIHost),
		from:       from,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// From retorna la dirección remitente efectiva.
func (n *Notifier) From() string { return n.from }

// ─── SendTicketWithAttachment ───

// SendTicketWithAttachment descarga el PDF de fileURL, lo adjunta como
// boletos-<id>.pdf y envía el email de boletos al comprador.
func (n *Notifier) SendTicketWithAttachment(ctx context.Context, m movement.Movement, fileURL string, ticketCount int) error {
	log := logger.From(ctx).With(
		logger.Op("SendTicketWithAttachment"),
		logger.MovementID(m.ID),
		logger.SendID(uuid.NewString()),
	)

	if err := validate.Var(m.BuyerEmail, "required"); err != nil {
		metrics.EmailSendsTotal.WithLabelValues(TemplateTickets, "invalid").Inc()
		log.Warn("movement has no buyer email")
		return ErrMissingBuyerEmail
	}

	pdf, err := n.fetch(ctx, fileURL)
	if err != nil {
		metrics.AttachmentFetchErrors.Inc()
		log.Error("error fetching tickets pdf",
			logger.Err(err),
			logger.String("diag_code", DiagnoseDelivery(err).Code),
		)
		return err
	}
	metrics.AttachmentFetchBytes.Observe(float64(len(pdf)))

	msg := Message{
		To:          m.BuyerEmail,
		From:        n.from,
		Subject:     ticketSubject,
		HTML:        RenderTicket(TicketVarsFor(m, ticketCount, fileURL)),
		Attachments: []Attachment{TicketAttachment(m.ID, pdf)},
		CustomArgs:  movementArgs(m),
	}
	return n.deliver(ctx, log, TemplateTickets, msg)
}

// ─── SendPaymentConfirmation ───

// SendPaymentConfirmation envía el aviso de pago recibido a email, sin adjuntos.
func (n *Notifier) SendPaymentConfirmation(ctx context.Context, email string, m movement.Movement) error {
	log := logger.From(ctx).With(
		logger.Op("SendPaymentConfirmation"),
		logger.MovementID(m.ID),
		logger.SendID(uuid.NewString()),
	)

	msg := Message{
		To:         email,
		From:       n.from,
		Subject:    paymentConfirmationSubject,
		HTML:       RenderPaymentConfirmation(PaymentConfirmationVarsFor(m)),
		CustomArgs: movementArgs(m),
	}
	return n.deliver(ctx, log, TemplatePaymentConfirmation, msg)
}

// deliver hace el único intento de envío, loguea y registra métricas.
// El error del Sender se retorna sin envolver.
func (n *Notifier) deliver(ctx context.Context, log *zap.Logger, template string, msg Message) error {
	start := time.Now()
	err := n.sender.Send(ctx, msg)
	metrics.EmailSendDuration.WithLabelValues(template).Observe(time.Since(start).Seconds())

	if err != nil {
		diag := DiagnoseDelivery(err)
		metrics.EmailSendsTotal.WithLabelValues(template, "failed").Inc()
		log.Error("error sending email",
			logger.Err(err),
			logger.String("template", template),
			logger.String("diag_code", diag.Code),
			logger.Bool("temporary", diag.Temporary),
		)
		return err
	}

	metrics.EmailSendsTotal.WithLabelValues(template, "sent").Inc()
	log.Info("email sent successfully", logger.Email(util.MaskEmail(msg.To)), logger.String("template", template))
	return nil
}

func movementArgs(m movement.Movement) map[string]string {
	if m.ID == "" {
		return nil
	}
	return map[string]string{"movement_id": m.ID}
}
