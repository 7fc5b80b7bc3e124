package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dropDatabas3/boletera/internal/config"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
	"github.com/dropDatabas3/boletera/internal/util"
)

const (
	sendEndpoint = "/v3/mail/send"
	maxErrorBody = 256
)

// DeliveryError es una respuesta no-2xx de la API de SendGrid.
type DeliveryError struct {
	StatusCode int
	Body       string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("sendgrid: status %d: %s", e.StatusCode, util.Truncate(e.Body, maxErrorBody))
}

// SendGridSender implementa Sender contra la API v3 de SendGrid.
type SendGridSender struct {
	apiKey string
	host   string
}

// NewSendGridSender crea un sender. host vacío => https://api.sendgrid.com.
func NewSendGridSender(apiKey, host string) *SendGridSender {
	host = strings.TrimRight(strings.TrimSpace(host), "/")
	if host == "" {
		host = config.DefaultSendGridAPIHost
	}
	return &SendGridSender{apiKey: apiKey, host: host}
}

// Send hace un único POST a /v3/mail/send.
// Errores de transporte se retornan sin tocar; status >= 300 => *DeliveryError.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	log := logger.From(ctx).With(
		logger.Component("SendGridSender"),
		logger.String("host", s.host),
		logger.Email(util.MaskEmail(msg.To)),
	)

	log.Debug("sending email",
		logger.String("from", msg.From),
		logger.String("subject", msg.Subject),
		logger.Count(len(msg.Attachments)),
	)

	req := sendgrid.GetRequest(s.apiKey, sendEndpoint, s.host)
	req.Method = rest.Post
	req.Body = mail.GetRequestBody(buildMail(msg))

	resp, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		log.Error("sendgrid request failed", logger.Err(err))
		return err
	}
	if resp.StatusCode >= 300 {
		derr := &DeliveryError{StatusCode: resp.StatusCode, Body: resp.Body}
		log.Error("sendgrid rejected message", logger.Status(resp.StatusCode), logger.Err(derr))
		return derr
	}

	log.Debug("sendgrid accepted message",
		logger.Status(resp.StatusCode),
		logger.String("message_id", firstHeader(resp.Headers, "X-Message-Id")),
	)
	return nil
}

// buildMail traduce Message al payload v3. Sin adjuntos, el campo
// "attachments" no aparece en el JSON.
func buildMail(msg Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail("", msg.From))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	for k, v := range msg.CustomArgs {
		p.SetCustomArg(k, v)
	}
	m.AddPersonalizations(p)

	m.AddContent(mail.NewContent("text/html", msg.HTML))

	for _, a := range msg.Attachments {
		att := mail.NewAttachment().
			SetContent(a.Content).
			SetType(a.Type).
			SetFilename(a.Filename).
			SetDisposition(a.Disposition)
		if a.ContentID != "" {
			att.SetContentID(a.ContentID)
		}
		m.AddAttachment(att)
	}
	return m
}

func firstHeader(h map[string][]string, key string) string {
	for k, v := range h {
		if strings.EqualFold(k, key) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
