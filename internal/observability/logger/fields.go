package logger

import (
	"time"

	"go.uber.org/zap"
)

// ─── HTTP ───

func RequestID(v string) zap.Field { return zap.String("request_id", v) }

func Method(v string) zap.Field { return zap.String("method", v) }

func Path(v string) zap.Field { return zap.String("path", v) }

func Status(v int) zap.Field { return zap.Int("status", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }

// ─── Negocio ───

// MovementID identifica la compra (movimiento) que originó el envío.
func MovementID(v string) zap.Field { return zap.String("movement_id", v) }

// SendID correlaciona todos los logs de un mismo envío.
func SendID(v string) zap.Field { return zap.String("send_id", v) }

// Email crea un campo para el email (usar con cuidado en prod).
func Email(v string) zap.Field { return zap.String("email", v) }

// ProjectID es el proyecto de Firebase.
func ProjectID(v string) zap.Field { return zap.String("project_id", v) }

// Bucket es el bucket de Storage.
func Bucket(v string) zap.Field { return zap.String("bucket", v) }

// ─── Sistema ───

func Component(v string) zap.Field { return zap.String("component", v) }

func Op(v string) zap.Field { return zap.String("op", v) }

func Layer(v string) zap.Field { return zap.String("layer", v) }

func Err(err error) zap.Field { return zap.Error(err) }

// ─── Genéricos ───

func Count(v int) zap.Field { return zap.Int("count", v) }

func String(key, v string) zap.Field { return zap.String(key, v) }

func Int(key string, v int) zap.Field { return zap.Int(key, v) }

func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }

func Any(key string, v any) zap.Field { return zap.Any(key, v) }
