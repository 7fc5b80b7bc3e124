package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dtohealth "github.com/dropDatabas3/boletera/internal/http/dto/health"
	dtopreview "github.com/dropDatabas3/boletera/internal/http/dto/preview"
	"github.com/dropDatabas3/boletera/internal/http/helpers"
)

type fakeFirebase struct{}

func (fakeFirebase) ProjectID() string { return "boletera-test" }
func (fakeFirebase) Bucket() string    { return "boletera-test.appspot.com" }

type fakeEmail struct{}

func (fakeEmail) From() string { return "noreply@boletera.com" }

func newTestRouter(t *testing.T, deps RouterDeps) http.Handler {
	t.Helper()
	return NewRouter(deps)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestReadyz_Ready(t *testing.T) {
	h := newTestRouter(t, RouterDeps{Firebase: fakeFirebase{}, Email: fakeEmail{}})

	rec := do(t, h, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var resp dtohealth.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Equal(t, "ok", resp.Components["firebase"].Status)
	assert.Contains(t, resp.Components["firebase"].Message, "boletera-test.appspot.com")
	assert.Equal(t, "ok", resp.Components["email"].Status)
}

func TestReadyz_Unavailable(t *testing.T) {
	h := newTestRouter(t, RouterDeps{Email: fakeEmail{}})

	rec := do(t, h, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp dtohealth.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unavailable", resp.Status)
	assert.Equal(t, "error", resp.Components["firebase"].Status)
}

func TestReadyz_PropagatesRequestID(t *testing.T) {
	h := newTestRouter(t, RouterDeps{Firebase: fakeFirebase{}, Email: fakeEmail{}})

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
}

func TestPreview_Tickets(t *testing.T) {
	h := newTestRouter(t, RouterDeps{})

	body := `{"movement":{"id":"X1","buyer_email":"ana@example.com","buyer_name":"Ana","total":"100","tipo_pago":"card"},"ticket_count":2,"pdf_url":"https://cdn.example.com/t.pdf"}`
	rec := do(t, h, http.MethodPost, "/v1/preview/tickets", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dtopreview.PreviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "tickets", resp.Template)
	assert.NotEmpty(t, resp.Subject)
	for _, want := range []string{"X1", "Ana", "100", "card", "https://cdn.example.com/t.pdf"} {
		assert.Contains(t, resp.HTML, want)
	}
}

func TestPreview_PaymentConfirmation(t *testing.T) {
	h := newTestRouter(t, RouterDeps{})

	body := `{"movement":{"id":"X1","buyer_email":"ana@example.com","total":100,"tipo_pago":"card"}}`
	rec := do(t, h, http.MethodPost, "/v1/preview/payment-confirmation", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dtopreview.PreviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.HTML, "Hola Usuario,")
	assert.Contains(t, resp.HTML, "Confirmado")
}

func TestPreview_Errors(t *testing.T) {
	h := newTestRouter(t, RouterDeps{})
	valid := `{"movement":{"id":"X1","total":"1"}}`

	cases := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"unknown template", "/v1/preview/welcome", valid, http.StatusNotFound, "unknown_template"},
		{"invalid json", "/v1/preview/tickets", `{"movement":`, http.StatusBadRequest, "invalid_json"},
		{"missing movement id", "/v1/preview/tickets", `{"movement":{}}`, http.StatusBadRequest, "bad_request"},
		{"negative count", "/v1/preview/tickets", `{"movement":{"id":"X1"},"ticket_count":-1}`, http.StatusBadRequest, "bad_request"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tc.path, tc.body)
			require.Equal(t, tc.status, rec.Code, rec.Body.String())

			var herr helpers.HTTPError
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&herr))
			assert.Equal(t, tc.code, herr.Code)
		})
	}
}

func TestPreview_RequiresJSONContentType(t *testing.T) {
	h := newTestRouter(t, RouterDeps{})

	req := httptest.NewRequest(http.MethodPost, "/v1/preview/tickets", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	h := newTestRouter(t, RouterDeps{})

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/send", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/v1/preview/tickets", "").Code)
}

func TestMetricsRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	mh, err := RegisterMetrics(MetricsConfig{Registry: reg, Gatherer: reg})
	require.NoError(t, err)

	h := newTestRouter(t, RouterDeps{MetricsHandler: mh})

	// genera una serie http_requests_total
	do(t, h, http.MethodPost, "/v1/preview/tickets", `{"movement":{"id":"X1"}}`)

	rec := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, "http_requests_total")
	assert.Contains(t, out, `path="/v1/preview/{template}"`)
	assert.Contains(t, out, "email_attachment_fetch_errors_total")
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", normalizePath(""))
	assert.Equal(t, "/v1/movements/:param", normalizePath("/v1/movements/12345"))
	assert.Equal(t, "/v1/movements/:param", normalizePath("/v1/movements/6f1c2e0a-1b2c-4d5e-8f90-123456789abc"))
	assert.Equal(t, "/readyz", normalizePath("/readyz?x=1"))
}
