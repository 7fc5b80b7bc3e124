package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Métricas de envíos transaccionales. Van en un paquete propio para que
// email y http no se importen entre sí.

var (
	EmailSendsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "email_sends_total",
		Help: "Envíos al proveedor de email por template y resultado",
	}, []string{"template", "result"}) // result: sent|failed|invalid

	EmailSendDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "email_send_duration_seconds",
		Help:    "Latencia de la llamada al proveedor de email",
		Buckets: prometheus.DefBuckets,
	}, []string{"template"})

	AttachmentFetchBytes = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "email_attachment_fetch_bytes",
		Help:    "Tamaño de los PDFs descargados para adjuntar",
		Buckets: prometheus.ExponentialBuckets(16*1024, 2, 10),
	})

	AttachmentFetchErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "email_attachment_fetch_errors_total",
		Help: "Descargas de PDF fallidas",
	})
)

// Register registra las métricas en reg (o en el default si es nil).
// Registrar dos veces no es error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		EmailSendsTotal,
		EmailSendDuration,
		AttachmentFetchBytes,
		AttachmentFetchErrors,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
