package email

import "context"

// Sender entrega un Message al proveedor de email.
// Implementada por SendGridSender; los tests usan fakes.
type Sender interface {
	// Send hace un único intento. El error del proveedor se retorna tal cual.
	Send(ctx context.Context, msg Message) error
}
