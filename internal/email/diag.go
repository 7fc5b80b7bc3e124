package email

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// DeliveryDiag resume un error de envío para los logs. No se usa para reintentar.
type DeliveryDiag struct {
	Code      string // auth|forbidden|bad_request|payload_too_large|rate_limited|upstream|attachment|timeout|network|canceled|unknown
	Temporary bool   // si un reintento del caller tendría sentido
}

// DiagnoseDelivery clasifica un error devuelto por Sender o por la descarga del PDF.
func DiagnoseDelivery(err error) DeliveryDiag {
	if err == nil {
		return DeliveryDiag{Code: "unknown"}
	}

	var derr *DeliveryError
	if errors.As(err, &derr) {
		switch {
		case derr.StatusCode == http.StatusUnauthorized:
			return DeliveryDiag{Code: "auth"}
		case derr.StatusCode == http.StatusForbidden:
			// from no verificado o permisos de la API key
			return DeliveryDiag{Code: "forbidden"}
		case derr.StatusCode == http.StatusRequestEntityTooLarge:
			return DeliveryDiag{Code: "payload_too_large"}
		case derr.StatusCode == http.StatusTooManyRequests:
			return DeliveryDiag{Code: "rate_limited", Temporary: true}
		case derr.StatusCode >= 500:
			return DeliveryDiag{Code: "upstream", Temporary: true}
		case derr.StatusCode >= 400:
			return DeliveryDiag{Code: "bad_request"}
		}
		return DeliveryDiag{Code: "unknown"}
	}

	var ferr *FetchError
	if errors.As(err, &ferr) {
		return DeliveryDiag{Code: "attachment", Temporary: ferr.StatusCode >= 500}
	}

	if errors.Is(err, context.Canceled) {
		return DeliveryDiag{Code: "canceled"}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return DeliveryDiag{Code: "timeout", Temporary: true}
	}

	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return DeliveryDiag{Code: "timeout", Temporary: true}
		}
		return DeliveryDiag{Code: "network", Temporary: true}
	}
	return DeliveryDiag{Code: "unknown"}
}
