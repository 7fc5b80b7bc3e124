package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config agrupa la configuración de los dos componentes (Firebase y email)
// más el stack operativo (logs, servidor de ops).
//
// Cada componente valida su propia sección al construirse: cargar la config
// nunca falla por credenciales ausentes, así un proceso que sólo usa email
// no necesita Firebase y viceversa.
type Config struct {
	App struct {
		// dev | prod
		Env      string `yaml:"app_env"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"app"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Firebase Firebase `yaml:"firebase"`

	Email Email `yaml:"email"`
}

// Firebase contiene las dos fuentes posibles de credenciales más el bucket.
// ServiceAccountKey (blob JSON) tiene prioridad sobre los campos sueltos.
type Firebase struct {
	ServiceAccountKey string `yaml:"service_account_key"`

	ProjectID    string `yaml:"project_id"`
	PrivateKeyID string `yaml:"private_key_id"`
	PrivateKey   string `yaml:"private_key"`
	ClientEmail  string `yaml:"client_email"`
	ClientID     string `yaml:"client_id"`
	AuthURI      string `yaml:"auth_uri"`
	TokenURI     string `yaml:"token_uri"`

	StorageBucket string `yaml:"storage_bucket"`
}

// Email configura el envío transaccional vía SendGrid.
type Email struct {
	SendGridAPIKey  string `yaml:"sendgrid_api_key"`
	SendGridAPIHost string `yaml:"sendgrid_api_host"`
	FromEmail       string `yaml:"from_email"`
}

const (
	DefaultServerAddr      = ":8080"
	DefaultFromEmail       = "noreply@boletera.com"
	DefaultSendGridAPIHost = "https://api.sendgrid.com"
)

// Load lee el YAML opcional en path (vacío o inexistente => sólo env),
// aplica overrides por variables de entorno y completa defaults.
func Load(path string) (*Config, error) {
	var c Config

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// sin archivo: sólo env
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, err
			}
		}
	}

	c.applyEnvOverrides()
	c.applyDefaults()

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultServerAddr
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = DefaultFromEmail
	}
	if c.Email.SendGridAPIHost == "" {
		c.Email.SendGridAPIHost = DefaultSendGridAPIHost
	}
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

// applyEnvOverrides: pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	// APP
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.App.LogLevel = strings.ToLower(v)
	}
	// Compat: algunos despliegues sólo setean DEBUG=true
	if v, ok := getEnvBool("DEBUG"); ok && v {
		c.App.LogLevel = "debug"
	}

	// SERVER
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}

	// FIREBASE
	if v, ok := getEnvStr("FIREBASE_SERVICE_ACCOUNT_KEY"); ok {
		c.Firebase.ServiceAccountKey = v
	}
	if v, ok := getEnvStr("FIREBASE_PROJECT_ID"); ok {
		c.Firebase.ProjectID = v
	}
	if v, ok := getEnvStr("FIREBASE_PRIVATE_KEY_ID"); ok {
		c.Firebase.PrivateKeyID = v
	}
	if v, ok := getEnvStr("FIREBASE_PRIVATE_KEY"); ok {
		c.Firebase.PrivateKey = v
	}
	if v, ok := getEnvStr("FIREBASE_CLIENT_EMAIL"); ok {
		c.Firebase.ClientEmail = v
	}
	if v, ok := getEnvStr("FIREBASE_CLIENT_ID"); ok {
		c.Firebase.ClientID = v
	}
	if v, ok := getEnvStr("FIREBASE_AUTH_URI"); ok {
		c.Firebase.AuthURI = v
	}
	if v, ok := getEnvStr("FIREBASE_TOKEN_URI"); ok {
		c.Firebase.TokenURI = v
	}
	if v, ok := getEnvStr("FIREBASE_STORAGE_BUCKET"); ok {
		c.Firebase.StorageBucket = strings.TrimSpace(v)
	}

	// EMAIL
	if v, ok := getEnvStr("SENDGRID_API_KEY"); ok {
		c.Email.SendGridAPIKey = strings.TrimSpace(v)
	}
	if v, ok := getEnvStr("SENDGRID_API_HOST"); ok {
		c.Email.SendGridAPIHost = strings.TrimRight(strings.TrimSpace(v), "/")
	}
	if v, ok := getEnvStr("FROM_EMAIL"); ok {
		c.Email.FromEmail = strings.TrimSpace(v)
	}
}
