// Package movement define el registro de compra que recibe el notificador.
package movement

import "github.com/shopspring/decimal"

// Movement es una compra de boletos tal como la guarda el backend de órdenes.
// El notificador sólo la lee.
type Movement struct {
	ID         string          `json:"id"`
	BuyerEmail string          `json:"buyer_email"`
	BuyerName  string          `json:"buyer_name,omitempty"`
	Total      decimal.Decimal `json:"total"`
	TipoPago   string          `json:"tipo_pago"` // etiqueta del método de pago: "card", "oxxo", ...
}

// DisplayName retorna el nombre del comprador o "Usuario" si no hay.
func (m Movement) DisplayName() string {
	if m.BuyerName == "" {
		return "Usuario"
	}
	return m.BuyerName
}
