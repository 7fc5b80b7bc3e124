// Package firebase construye la conexión compartida con Firebase
// (Firestore, Storage y Auth) a partir de credenciales de entorno.
//
// El proceso debería construir un único Connector al arrancar y pasarlo a
// quien lo necesite. Instance existe para el código que no recibe el
// Connector por parámetro: devuelve siempre el mismo.
package firebase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/storage"
	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2/google"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/option"

	"github.com/dropDatabas3/boletera/internal/config"
	"github.com/dropDatabas3/boletera/internal/observability/logger"
)

// Scopes que usa el Admin SDK (Firestore, Storage, Auth).
var firebaseScopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
	"https://www.googleapis.com/auth/devstorage.full_control",
	"https://www.googleapis.com/auth/firebase",
	"https://www.googleapis.com/auth/identitytoolkit",
	"https://www.googleapis.com/auth/userinfo.email",
}

var validate = validator.New()

// Connector es la sesión autenticada con Firebase.
// Todos los handles se crean una vez y son de sólo lectura.
type Connector struct {
	app       *fb.App
	firestore *firestore.Client
	storage   *storage.Client
	auth      *auth.Client

	projectID string
	bucket    string
	source    Kind
}

type clients struct {
	firestore *firestore.Client
	storage   *storage.Client
	auth      *auth.Client
}

// Reemplazables en tests para no abrir conexiones reales.
var (
	newApp      = fb.NewApp
	openClients = defaultOpenClients
)

func defaultOpenClients(ctx context.Context, app *fb.App) (clients, error) {
	fs, err := app.Firestore(ctx)
	if err != nil {
		return clients{}, fmt.Errorf("firestore: %w", err)
	}
	st, err := app.Storage(ctx)
	if err != nil {
		_ = fs.Close()
		return clients{}, fmt.Errorf("storage: %w", err)
	}
	au, err := app.Auth(ctx)
	if err != nil {
		_ = fs.Close()
		return clients{}, fmt.Errorf("auth: %w", err)
	}
	return clients{firestore: fs, storage: st, auth: au}, nil
}

// New construye un Connector nuevo. No lo registra como instancia del proceso.
func New(ctx context.Context, cfg config.Firebase) (*Connector, error) {
	log := logger.From(ctx).With(logger.Component("firebase"), logger.Op("New"))

	creds, err := ResolveCredentials(cfg)
	if err != nil {
		log.Error("firebase credentials not resolved", logger.Err(err))
		return nil, err
	}

	bucket := strings.TrimSpace(cfg.StorageBucket)
	if err := validate.Var(bucket, "required"); err != nil {
		log.Error("storage bucket not configured")
		return nil, ErrMissingBucket
	}

	gcreds, err := google.CredentialsFromJSON(ctx, creds.JSON, firebaseScopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse service account: %v", ErrConfig, err)
	}

	projectID := creds.ProjectID
	if projectID == "" {
		projectID = gcreds.ProjectID
	}

	app, err := newApp(ctx, &fb.Config{
		ProjectID:     projectID,
		StorageBucket: bucket,
	}, option.WithCredentials(gcreds))
	if err != nil {
		log.Error("firebase app init failed", logger.Err(err))
		return nil, fmt.Errorf("firebase: init app: %w", err)
	}

	c, err := FromApp(ctx, app, projectID, bucket)
	if err != nil {
		return nil, err
	}
	c.source = creds.Kind

	log.Info("firebase connector ready",
		logger.String("credentials", string(creds.Kind)),
		logger.ProjectID(projectID),
		logger.Bucket(bucket),
	)
	return c, nil
}

// FromApp envuelve una *firebase.App creada en otra parte del proceso.
func FromApp(ctx context.Context, app *fb.App, projectID, bucket string) (*Connector, error) {
	if app == nil {
		return nil, fmt.Errorf("%w: nil app", ErrConfig)
	}
	cl, err := openClients(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("firebase: open clients: %w", err)
	}
	return &Connector{
		app:       app,
		firestore: cl.firestore,
		storage:   cl.storage,
		auth:      cl.auth,
		projectID: projectID,
		bucket:    bucket,
	}, nil
}

// ─── Instancia del proceso ───

var (
	mu        sync.Mutex
	current   *Connector
	initGroup singleflight.Group
)

// Instance retorna el Connector del proceso, construyéndolo en la primera
// llamada. Llamadas concurrentes durante la construcción comparten el
// resultado. Un error no queda cacheado: la siguiente llamada reintenta.
// Una vez construido, cambios posteriores en cfg se ignoran.
func Instance(ctx context.Context, cfg config.Firebase) (*Connector, error) {
	if c := loadCurrent(); c != nil {
		return c, nil
	}

	v, err, _ := initGroup.Do("default", func() (any, error) {
		if c := loadCurrent(); c != nil {
			return c, nil
		}
		c, err := New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return Adopt(c), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Connector), nil
}

// Adopt registra c como Connector del proceso si todavía no hay uno.
// Si ya existe, c se cierra y se retorna el existente.
func Adopt(c *Connector) *Connector {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = c
		return c
	}
	if c != current {
		// la *fb.App no abre conexiones propias: basta con cerrar los clientes
		_ = c.Close()
	}
	return current
}

func loadCurrent() *Connector {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// UnsafeResetForTests borra la instancia del proceso. Usar sólo en tests.
func UnsafeResetForTests() {
	mu.Lock()
	current = nil
	mu.Unlock()
}

// ─── Accessors ───

// Firestore retorna el cliente de la base de documentos.
func (c *Connector) Firestore() *firestore.Client { return c.firestore }

// Storage retorna el cliente de Cloud Storage (bucket default = StorageBucket).
func (c *Connector) Storage() *storage.Client { return c.storage }

// Auth retorna el cliente de Firebase Auth.
func (c *Connector) Auth() *auth.Client { return c.auth }

// App retorna la app de Firebase.
func (c *Connector) App() *fb.App { return c.app }

func (c *Connector) ProjectID() string { return c.projectID }

func (c *Connector) Bucket() string { return c.bucket }

// CredentialSource es vacío si el Connector vino de FromApp.
func (c *Connector) CredentialSource() Kind { return c.source }

// Close cierra el cliente de Firestore (los demás no mantienen conexiones).
func (c *Connector) Close() error {
	if c == nil || c.firestore == nil {
		return nil
	}
	return c.firestore.Close()
}
