package email

// ─── Mensaje ───

// Message es un email listo para el proveedor. Se arma por envío y no se persiste.
type Message struct {
	To          string
	From        string
	Subject     string
	HTML        string
	Attachments []Attachment      // opcional
	CustomArgs  map[string]string // opcional, viaja como custom_args de SendGrid
}

// Attachment es un adjunto con el contenido ya codificado en base64.
type Attachment struct {
	Filename    string
	Type        string // MIME type
	Disposition string // "attachment" | "inline"
	ContentID   string
	Content     string // base64 (StdEncoding)
}

// ─── Variables de template ───

// TicketVars son las variables del email con los boletos.
type TicketVars struct {
	BuyerName     string
	MovementID    string
	TicketCount   int
	Total         string
	PaymentMethod string
	DownloadURL   string
}

// PaymentConfirmationVars son las variables del email de pago confirmado.
type PaymentConfirmationVars struct {
	BuyerName     string
	MovementID    string
	Total         string
	PaymentMethod string
}
