package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
)

const (
	pdfContentType = "application/pdf"
	ticketsCID     = "tickets"
)

// FetchError es una respuesta no-2xx al descargar el PDF.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("email: fetch attachment %s: status %d", e.URL, e.StatusCode)
}

// fetch descarga url en un solo intento. Errores de transporte se retornan sin tocar.
func (n *Notifier) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}

// TicketAttachment empaqueta el PDF de boletos de un movimiento.
func TicketAttachment(movementID string, pdf []byte) Attachment {
	return Attachment{
		Filename:    fmt.Sprintf("boletos-%s.pdf", movementID),
		Type:        pdfContentType,
		Disposition: "attachment",
		ContentID:   ticketsCID,
		Content:     base64.StdEncoding.EncodeToString(pdf),
	}
}
