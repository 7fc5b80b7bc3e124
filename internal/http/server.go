package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

const shutdownTimeout = 10 * time.Second

// NewServer crea el http.Server de ops con timeouts razonables.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Start sirve en addr hasta que ctx se cancele y luego hace shutdown ordenado.
func Start(ctx context.Context, addr string, handler http.Handler) error {
	srv := NewServer(addr, handler)
	log := logger.From(ctx).With(logger.Component("http"), logger.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		log.Info("ops server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("shutting down ops server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
