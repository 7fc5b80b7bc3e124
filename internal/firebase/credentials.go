package firebase

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dropDatabas3/boletera/internal/config"
)

// ─── Errors ───

var (
	ErrConfig        = errors.New("firebase: invalid configuration")
	ErrNoCredentials = fmt.Errorf("%w: Firebase configuration not found. Please set FIREBASE_SERVICE_ACCOUNT_KEY or individual environment variables", ErrConfig)
	ErrMissingBucket = fmt.Errorf("%w: FIREBASE_STORAGE_BUCKET is required", ErrConfig)
)

const (
	defaultAuthURI      = "https://accounts.google.com/o/oauth2/auth"
	defaultTokenURI     = "https://oauth2.googleapis.com/token"
	authProviderCertURL = "https://www.googleapis.com/oauth2/v1/certs"
	clientCertURLPrefix = "https://www.googleapis.com/robot/v1/metadata/x509/"
)

// Kind indica de qué fuente salieron las credenciales.
type Kind string

const (
	// KindServiceAccountJSON: blob completo en FIREBASE_SERVICE_ACCOUNT_KEY.
	KindServiceAccountJSON Kind = "json"
	// KindServiceAccountFields: armado desde FIREBASE_PROJECT_ID, FIREBASE_PRIVATE_KEY, etc.
	KindServiceAccountFields Kind = "fields"
)

// ServiceAccount es el documento JSON de una cuenta de servicio de Google.
type ServiceAccount struct {
	Type                    string `json:"type"`
	ProjectID               string `json:"project_id"`
	PrivateKeyID            string `json:"private_key_id"`
	PrivateKey              string `json:"private_key"`
	ClientEmail             string `json:"client_email"`
	ClientID                string `json:"client_id"`
	AuthURI                 string `json:"auth_uri"`
	TokenURI                string `json:"token_uri"`
	AuthProviderX509CertURL string `json:"auth_provider_x509_cert_url"`
	ClientX509CertURL       string `json:"client_x509_cert_url"`
}

// Credentials es el resultado de elegir UNA fuente de credenciales.
// Se resuelve una sola vez al cargar la configuración.
type Credentials struct {
	Kind        Kind
	JSON        []byte // documento de cuenta de servicio listo para el SDK
	ProjectID   string
	ClientEmail string
}

// serviceAccount decodifica el documento de credenciales.
func (c Credentials) serviceAccount() (ServiceAccount, error) {
	var sa ServiceAccount
	err := json.Unmarshal(c.JSON, &sa)
	return sa, err
}

// ResolveCredentials elige la fuente de credenciales:
//  1. FIREBASE_SERVICE_ACCOUNT_KEY (blob JSON), si está presente. Los campos sueltos no se leen.
//  2. Si no, los campos sueltos (requiere FIREBASE_PRIVATE_KEY).
//  3. Si no hay ninguna, ErrNoCredentials.
func ResolveCredentials(cfg config.Firebase) (Credentials, error) {
	if blob := strings.TrimSpace(cfg.ServiceAccountKey); blob != "" {
		var sa ServiceAccount
		if err := json.Unmarshal([]byte(blob), &sa); err != nil {
			return Credentials{}, fmt.Errorf("%w: FIREBASE_SERVICE_ACCOUNT_KEY is not valid JSON: %v", ErrConfig, err)
		}
		return Credentials{
			Kind:        KindServiceAccountJSON,
			JSON:        []byte(blob),
			ProjectID:   sa.ProjectID,
			ClientEmail: sa.ClientEmail,
		}, nil
	}

	if cfg.PrivateKey != "" {
		sa := ServiceAccount{
			Type:                    "service_account",
			ProjectID:               cfg.ProjectID,
			PrivateKeyID:            cfg.PrivateKeyID,
			PrivateKey:              strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n"),
			ClientEmail:             cfg.ClientEmail,
			ClientID:                cfg.ClientID,
			AuthURI:                 orDefault(cfg.AuthURI, defaultAuthURI),
			TokenURI:                orDefault(cfg.TokenURI, defaultTokenURI),
			AuthProviderX509CertURL: authProviderCertURL,
			ClientX509CertURL:       clientCertURLPrefix + cfg.ClientEmail,
		}
		b, err := json.Marshal(sa)
		if err != nil {
			return Credentials{}, fmt.Errorf("%w: encode service account: %v", ErrConfig, err)
		}
		return Credentials{
			Kind:        KindServiceAccountFields,
			JSON:        b,
			ProjectID:   sa.ProjectID,
			ClientEmail: sa.ClientEmail,
		}, nil
	}

	return Credentials{}, ErrNoCredentials
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
