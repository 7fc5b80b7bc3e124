package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/boletera/internal/config"
	"github.com/dropDatabas3/boletera/internal/email"
	"github.com/dropDatabas3/boletera/internal/firebase"
	httpserver "github.com/dropDatabas3/boletera/internal/http"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
		log.Println("   Continuing with system environment variables...")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "boletera"})
	defer func() { _ = logger.Sync() }()
	lg := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := firebase.Instance(ctx, cfg.Firebase)
	if err != nil {
		lg.Fatal("firebase init failed", logger.Err(err))
	}
	defer func() {
		if err := conn.Close(); err != nil {
			lg.Warn("firebase close failed", logger.Err(err))
		}
	}()

	notifier, err := email.NewNotifier(cfg.Email)
	if err != nil {
		lg.Fatal("email init failed", logger.Err(err))
	}

	metricsHandler, err := httpserver.RegisterMetrics(httpserver.MetricsConfig{})
	if err != nil {
		lg.Fatal("metrics init failed", logger.Err(err))
	}

	handler := httpserver.NewRouter(httpserver.RouterDeps{
		Firebase:       conn,
		Email:          notifier,
		MetricsHandler: metricsHandler,
	})

	lg.Info("boletera ready",
		logger.ProjectID(conn.ProjectID()),
		logger.Bucket(conn.Bucket()),
		logger.String("from", notifier.From()),
		logger.String("addr", cfg.Server.Addr),
	)

	if err := httpserver.Start(ctx, cfg.Server.Addr, handler); err != nil {
		lg.Error("ops server failed", logger.Err(err))
	}
}
