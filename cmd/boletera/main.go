package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/dropDatabas3/boletera/internal/config"
	"github.com/dropDatabas3/boletera/internal/domain/movement"
	"github.com/dropDatabas3/boletera/internal/email"
	"github.com/dropDatabas3/boletera/internal/firebase"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath = envOr("CONFIG_PATH", "")
		out        = envOr("BOLETERA_OUT", "text")
		timeout    = 60 * time.Second
		cfg        *config.Config
	)

	root := &cobra.Command{
		Use:          "boletera",
		Short:        "CLI de operación: conector Firebase y emails transaccionales",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfg = c
			logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "boletera-cli"})
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "Archivo YAML opcional (env CONFIG_PATH)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")
	root.PersistentFlags().DurationVar(&timeout, "timeout", timeout, "Timeout de la operación")

	// ─── firebase ───

	firebaseCmd := &cobra.Command{Use: "firebase", Short: "Operaciones sobre el conector de Firebase"}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Construye el conector y muestra proyecto, bucket y fuente de credenciales",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			conn, err := firebase.Instance(ctx, cfg.Firebase)
			if err != nil {
				return err
			}
			defer conn.Close()

			return printOut(out, map[string]any{
				"project_id":        conn.ProjectID(),
				"storage_bucket":    conn.Bucket(),
				"credential_source": string(conn.CredentialSource()),
			})
		},
	}
	firebaseCmd.AddCommand(infoCmd)

	// ─── email ───

	emailCmd := &cobra.Command{Use: "email", Short: "Envío y preview de emails transaccionales"}

	var mv movementFlags
	var fileURL string
	var ticketCount int

	ticketsCmd := &cobra.Command{
		Use:   "tickets",
		Short: "Envía los boletos en PDF adjuntos al comprador",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileURL == "" {
				return fmt.Errorf("--file-url es requerido")
			}
			m, err := mv.movement()
			if err != nil {
				return err
			}
			n, err := email.NewNotifier(cfg.Email)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := n.SendTicketWithAttachment(ctx, m, fileURL, ticketCount); err != nil {
				return fmt.Errorf("tickets fallo (%s): %w", email.DiagnoseDelivery(err).Code, err)
			}
			return printOut(out, map[string]any{"sent": true, "to": m.BuyerEmail, "movement_id": m.ID})
		},
	}
	mv.register(ticketsCmd)
	ticketsCmd.Flags().StringVar(&fileURL, "file-url", "", "URL del PDF de boletos")
	ticketsCmd.Flags().IntVar(&ticketCount, "count", 1, "Número de boletos")

	var mvConf movementFlags
	var to string
	confirmationCmd := &cobra.Command{
		Use:   "confirmation",
		Short: "Envía el aviso de pago confirmado (sin adjuntos)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mvConf.movement()
			if err != nil {
				return err
			}
			if to == "" {
				to = m.BuyerEmail
			}
			if to == "" {
				return fmt.Errorf("--to o --buyer-email es requerido")
			}
			n, err := email.NewNotifier(cfg.Email)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			if err := n.SendPaymentConfirmation(ctx, to, m); err != nil {
				return fmt.Errorf("confirmation fallo (%s): %w", email.DiagnoseDelivery(err).Code, err)
			}
			return printOut(out, map[string]any{"sent": true, "to": to, "movement_id": m.ID})
		},
	}
	mvConf.register(confirmationCmd)
	confirmationCmd.Flags().StringVar(&to, "to", "", "Destinatario (default: --buyer-email)")

	var mvPrev movementFlags
	var prevTemplate, prevURL string
	var prevCount int
	previewCmd := &cobra.Command{
		Use:   "preview",
		Short: "Renderiza un template sin enviar (tickets|payment-confirmation)",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := mvPrev.movement()
			if err != nil {
				return err
			}
			subject, body, err := email.Preview(prevTemplate, m, prevCount, prevURL)
			if err != nil {
				return err
			}
			if out == "json" {
				return printOut(out, map[string]any{"template": prevTemplate, "subject": subject, "html": body})
			}
			fmt.Println("Subject:", subject)
			fmt.Println(body)
			return nil
		},
	}
	mvPrev.register(previewCmd)
	previewCmd.Flags().StringVar(&prevTemplate, "template", email.TemplateTickets, "tickets|payment-confirmation")
	previewCmd.Flags().StringVar(&prevURL, "file-url", "https://example.com/boletos.pdf", "URL del PDF (sólo tickets)")
	previewCmd.Flags().IntVar(&prevCount, "count", 1, "Número de boletos (sólo tickets)")

	emailCmd.AddCommand(ticketsCmd, confirmationCmd, previewCmd)

	root.AddCommand(firebaseCmd, emailCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := root.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// movementFlags arma un movement.Movement desde flags.
type movementFlags struct {
	id, buyerEmail, buyerName, total, tipoPago string
}

func (f *movementFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.id, "movement-id", "", "ID del movimiento (requerido)")
	cmd.Flags().StringVar(&f.buyerEmail, "buyer-email", "", "Email del comprador")
	cmd.Flags().StringVar(&f.buyerName, "buyer-name", "", "Nombre del comprador")
	cmd.Flags().StringVar(&f.total, "total", "0", "Total pagado")
	cmd.Flags().StringVar(&f.tipoPago, "payment-method", "", "Método de pago")
}

func (f *movementFlags) movement() (movement.Movement, error) {
	if f.id == "" {
		return movement.Movement{}, fmt.Errorf("--movement-id es requerido")
	}
	total, err := decimal.NewFromString(f.total)
	if err != nil {
		return movement.Movement{}, fmt.Errorf("--total inválido: %w", err)
	}
	return movement.Movement{
		ID:         f.id,
		BuyerEmail: f.buyerEmail,
		BuyerName:  f.buyerName,
		Total:      total,
		TipoPago:   f.tipoPago,
	}, nil
}

func printOut(format string, v map[string]any) error {
	if format == "json" {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%v\n", k, v[k])
	}
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
