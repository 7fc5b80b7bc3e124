package email

import (
	"errors"
	"fmt"
	"html"
	"strconv"

	"github.com/dropDatabas3/boletera/internal/domain/movement"
)

// ─── Templates ───
// HTML fijo con sustitución simple. Los valores se escapan antes de interpolar.

const (
	TemplateTickets             = "tickets"
	TemplatePaymentConfirmation = "payment-confirmation"

	ticketSubject              = "🎫 Tus boletos han sido confirmados"
	paymentConfirmationSubject = "✅ Pago confirmado - Procesando tus boletos"
)

var ErrUnknownTemplate = errors.New("email: unknown template")

// TicketVarsFor arma las variables del email de boletos desde el movimiento.
func TicketVarsFor(m movement.Movement, ticketCount int, pdfURL string) TicketVars {
	return TicketVars{
		BuyerName:     m.DisplayName(),
		MovementID:    m.ID,
		TicketCount:   ticketCount,
		Total:         m.Total.String(),
		PaymentMethod: m.TipoPago,
		DownloadURL:   pdfURL,
	}
}

// PaymentConfirmationVarsFor arma las variables del email de pago confirmado.
func PaymentConfirmationVarsFor(m movement.Movement) PaymentConfirmationVars {
	return PaymentConfirmationVars{
		BuyerName:     m.DisplayName(),
		MovementID:    m.ID,
		Total:         m.Total.String(),
		PaymentMethod: m.TipoPago,
	}
}

// RenderTicket renderiza el email con los boletos adjuntos.
func RenderTicket(v TicketVars) string {
	e := html.EscapeString
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #667eea;">🎫 ¡Tus boletos están listos!</h1>

  <p>Hola %s,</p>

  <p>Tu compra ha sido confirmada exitosamente. Aquí tienes los detalles:</p>

  <div style="background: #f5f5f5; padding: 20px; border-radius: 10px; margin: 20px 0;">
    <h3>Detalles de la compra:</h3>
    <p><strong>ID de compra:</strong> %s</p>
    <p><strong>Número de boletos:</strong> %s</p>
    <p><strong>Total pagado:</strong> $%s</p>
    <p><strong>Método de pago:</strong> %s</p>
  </div>

  <p>Tus boletos están adjuntos en formato PDF. También puedes descargarlos desde el siguiente enlace:</p>

  <a href="%s" style="background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 5px; display: inline-block; margin: 20px 0;">
    📥 Descargar Boletos
  </a>

  <p><small>Este enlace expira en 7 días por seguridad.</small></p>

  <hr style="margin: 30px 0;">

  <p><strong>Instrucciones importantes:</strong></p>
  <ul>
    <li>Presenta tus boletos en formato digital o impreso el día del evento</li>
    <li>Cada boleto tiene un código QR único para validación</li>
    <li>Llega con tiempo suficiente para el acceso al evento</li>
  </ul>

  <p>¡Esperamos que disfrutes el evento!</p>

  <p style="color: #666; font-size: 12px;">
    Este email fue enviado automáticamente. No respondas a este mensaje.
  </p>
</div>
`,
		e(v.BuyerName),
		e(v.MovementID),
		strconv.Itoa(v.TicketCount),
		e(v.Total),
		e(v.PaymentMethod),
		e(v.DownloadURL),
	)
}

// RenderPaymentConfirmation renderiza el aviso de pago recibido (sin adjuntos).
func RenderPaymentConfirmation(v PaymentConfirmationVars) string {
	e := html.EscapeString
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #28a745;">✅ ¡Pago confirmado!</h1>

  <p>Hola %s,</p>

  <p>Hemos recibido tu pago exitosamente y estamos procesando tus boletos.</p>

  <div style="background: #d4edda; border: 1px solid #c3e6cb; padding: 20px; border-radius: 10px; margin: 20px 0;">
    <h3 style="color: #155724; margin: 0 0 10px 0;">Detalles del pago:</h3>
    <p style="margin: 5px 0;"><strong>ID de compra:</strong> %s</p>
    <p style="margin: 5px 0;"><strong>Monto:</strong> $%s</p>
    <p style="margin: 5px 0;"><strong>Método de pago:</strong> %s</p>
    <p style="margin: 5px 0;"><strong>Estado:</strong> Confirmado</p>
  </div>

  <p><strong>¿Qué sigue?</strong></p>
  <ul>
    <li>Generaremos tus boletos automáticamente</li>
    <li>Recibirás otro email con los boletos en formato PDF</li>
    <li>Este proceso puede tomar hasta 5 minutos</li>
  </ul>

  <p>Gracias por tu compra. Te contactaremos pronto con tus boletos.</p>

  <p style="color: #666; font-size: 12px;">
    Este email fue enviado automáticamente. No respondas a este mensaje.
  </p>
</div>
`,
		e(v.BuyerName),
		e(v.MovementID),
		e(v.Total),
		e(v.PaymentMethod),
	)
}

// Preview renderiza un template por nombre sin enviar nada.
// ticketCount y pdfURL sólo aplican a TemplateTickets.
func Preview(name string, m movement.Movement, ticketCount int, pdfURL string) (subject, body string, err error) {
	switch name {
	case TemplateTickets:
		return ticketSubject, RenderTicket(TicketVarsFor(m, ticketCount, pdfURL)), nil
	case TemplatePaymentConfirmation:
		return paymentConfirmationSubject, RenderPaymentConfirmation(PaymentConfirmationVarsFor(m)), nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
}
