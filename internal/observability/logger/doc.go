// Package logger expone un logger Zap singleton con scoping por contexto.
//
// Inicialización (una vez en main.go):
//
//	logger.Init(logger.Config{
//	    Env:   cfg.App.Env,      // "dev" o "prod"
//	    Level: cfg.App.LogLevel, // "debug", "info", "warn", "error"
//	})
//	defer logger.Sync()
//
// En services (con contexto):
//
//	log := logger.From(ctx).With(logger.Op("SendTicketWithAttachment"))
//	log.Info("email sent", logger.MovementID(m.ID))
//
// Sin contexto se usa el singleton: logger.L().Info("connector ready").
package logger
