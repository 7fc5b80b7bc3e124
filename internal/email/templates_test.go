package email

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/boletera/internal/domain/movement"
)

func sampleMovement() movement.Movement {
	return movement.Movement{
		ID:         "X1",
		BuyerEmail: "ana@example.com",
		BuyerName:  "Ana",
		Total:      decimal.NewFromInt(100),
		TipoPago:   "card",
	}
}

func TestTemplates_ContainMovementData(t *testing.T) {
	m := sampleMovement()

	renders := map[string]string{
		TemplateTickets:             RenderTicket(TicketVarsFor(m, 3, "https://cdn.example.com/t.pdf")),
		TemplatePaymentConfirmation: RenderPaymentConfirmation(PaymentConfirmationVarsFor(m)),
	}
	for name, out := range renders {
		for _, want := range []string{"X1", "Ana", "100", "card"} {
			assert.Contains(t, out, want, "template %s", name)
		}
	}
}

func TestRenderTicket_Structure(t *testing.T) {
	out := RenderTicket(TicketVarsFor(sampleMovement(), 3, "https://cdn.example.com/t.pdf?a=1&b=2"))

	assert.Contains(t, out, "¡Tus boletos están listos!")
	assert.Contains(t, out, "<strong>Número de boletos:</strong> 3")
	assert.Contains(t, out, "<strong>Total pagado:</strong> $100")
	assert.Contains(t, out, `href="https://cdn.example.com/t.pdf?a=1&amp;b=2"`)
	assert.Contains(t, out, "expira en 7 días")
	assert.Contains(t, out, "código QR único")
	assert.Contains(t, out, "Llega con tiempo suficiente")
}

func TestRenderPaymentConfirmation_Structure(t *testing.T) {
	out := RenderPaymentConfirmation(PaymentConfirmationVarsFor(sampleMovement()))

	assert.Contains(t, out, "¡Pago confirmado!")
	assert.Contains(t, out, "<strong>Monto:</strong> $100")
	assert.Contains(t, out, "<strong>Estado:</strong> Confirmado")
	assert.Contains(t, out, "¿Qué sigue?")
	assert.Contains(t, out, "hasta 5 minutos")
	assert.NotContains(t, out, "Descargar Boletos")
}

func TestTemplates_DefaultNameAndEscaping(t *testing.T) {
	m := sampleMovement()
	m.BuyerName = ""
	assert.Contains(t, RenderPaymentConfirmation(PaymentConfirmationVarsFor(m)), "Hola Usuario,")

	m.BuyerName = `<script>alert(1)</script>`
	out := RenderTicket(TicketVarsFor(m, 1, "https://x"))
	assert.False(t, strings.Contains(out, "<script>"))
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestTemplates_DecimalTotal(t *testing.T) {
	m := sampleMovement()
	m.Total = decimal.RequireFromString("250.50")
	assert.Contains(t, RenderTicket(TicketVarsFor(m, 2, "https://x")), "$250.5")
}

func TestPreview(t *testing.T) {
	subject, body, err := Preview(TemplateTickets, sampleMovement(), 2, "https://x")
	require.NoError(t, err)
	assert.Equal(t, ticketSubject, subject)
	assert.Contains(t, body, "X1")

	subject, _, err = Preview(TemplatePaymentConfirmation, sampleMovement(), 0, "")
	require.NoError(t, err)
	assert.Equal(t, paymentConfirmationSubject, subject)

	_, _, err = Preview("welcome", sampleMovement(), 0, "")
	assert.True(t, errors.Is(err, ErrUnknownTemplate))
}
