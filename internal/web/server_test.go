package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradescout/tradescout/internal/ai"
	"github.com/tradescout/tradescout/internal/cache"
	"github.com/tradescout/tradescout/internal/config"
	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/logging"
	"github.com/tradescout/tradescout/internal/store"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// testProvider answers every prompt with text, or fails with err.
type testProvider struct {
	text string
	err  error
}

func (p *testProvider) Name() string     { return "test" }
func (p *testProvider) Configured() bool { return true }

func (p *testProvider) Generate(context.Context, string, ai.Options) (string, error) {
	return p.text, p.err
}

// offlineSearch is a memory gateway whose Search always fails in transport.
type offlineSearch struct{ *store.Memory }

func (offlineSearch) Search(context.Context, core.SearchFilters) ([]core.Record, error) {
	return nil, &core.TransportError{Op: "search", Err: errors.New("connection refused")}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.RequestTimeout = 5 * time.Second
	cfg.Import.MaxFileSize = 1 << 20
	cfg.Import.MaxConcurrent = 2
	cfg.Import.MaxWaitTime = 50 * time.Millisecond
	cfg.Security.EnableCSP = true
	return cfg
}

type testEnv struct {
	server  *Server
	gateway *store.Memory
	cache   *cache.Cache
}

// newTestEnv builds a server over an in-memory gateway. mutate may adjust
// the config and deps before the server is created.
func newTestEnv(t *testing.T, mutate func(*config.Config, *Deps)) *testEnv {
	t.Helper()

	gw := store.NewMemory(logging.Discard())
	c := cache.New(gw, cache.NewMemoryMirror(), logging.Discard())
	require.NoError(t, c.InitialLoad(context.Background()))

	cfg := testConfig()
	deps := Deps{Cache: c, Gateway: gw, Logger: logging.Discard()}
	if mutate != nil {
		mutate(cfg, &deps)
	}

	s := NewServer(deps, cfg)
	s.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { s.Shutdown(context.Background()) })
	return &testEnv{server: s, gateway: gw, cache: c}
}

func withAI(p ai.Provider) func(*config.Config, *Deps) {
	return func(_ *config.Config, d *Deps) {
		chain := ai.NewChain(logging.Discard(), p)
		d.Analyzer = ai.NewAnalyzer(chain, nil, "English", ai.Options{}, logging.Discard())
		d.Factory = ai.NewFactoryService(chain, nil, "English")
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.server.Router().ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) seed(t *testing.T, inputs ...core.Input) []core.Record {
	t.Helper()
	out := make([]core.Record, len(inputs))
	for i, in := range inputs {
		res, err := e.cache.AddRecord(context.Background(), in)
		require.NoError(t, err)
		out[i] = res.Record
	}
	return out
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func acme() core.Input {
	return core.Input{
		Country:        "Germany",
		CompanyName:    "Acme",
		Website:        "https://acme.example",
		Sector:         "Technology",
		InterestStatus: core.InterestYes,
		Priority:       core.PriorityHigh,
		ActionNote:     "sent catalogue",
		FollowUpStatus: core.FollowUpFirst,
	}
}

func globex() core.Input {
	return core.Input{
		Country:        "Qatar",
		CompanyName:    "Globex",
		Sector:         "Energy",
		InterestStatus: core.InterestNo,
		Priority:       core.PriorityLow,
		ActionNote:     "met at fair",
		FollowUpStatus: core.FollowUpNone,
	}
}

func TestSecurityHeaders(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.do(t, http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, cspPolicy, rec.Header().Get("Content-Security-Policy"))
}

func TestSecurityHeaders_CSPDisabled(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config, _ *Deps) { cfg.Security.EnableCSP = false })
	rec := env.do(t, http.MethodGet, "/healthz", nil)
	assert.Empty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestAPIKeyAuth(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config, _ *Deps) {
		cfg.Security.RequireAPIKey = true
		cfg.Security.APIKeys = []string{"k1", "k2"}
	})

	tests := []struct {
		name     string
		headers  []string
		wantCode int
		wantBody string
	}{
		{"missing key", nil, http.StatusUnauthorized, "AUTH_MISSING_KEY"},
		{"wrong key", []string{"X-API-Key", "nope"}, http.StatusForbidden, "AUTH_INVALID_KEY"},
		{"second key", []string{"X-API-Key", "k2"}, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/catalog", nil, tt.headers...)
			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}

	// Health checks stay outside the API group.
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/healthz", nil).Code)
}

func TestRateLimit(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config, _ *Deps) {
		cfg.Rate.Enabled = true
		cfg.Rate.RequestsPerMinute = 2
	})

	for range 2 {
		require.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/api/catalog", nil).Code)
	}
	rec := env.do(t, http.MethodGet, "/api/catalog", nil)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "RATE001", decode[ErrorResponse](t, rec).Code)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	stop := make(chan struct{})
	defer close(stop)

	now := fixedNow
	rl := newRateLimiter(1, time.Minute, stop)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("10.0.0.1"))
	assert.False(t, rl.allow("10.0.0.1"))
	assert.True(t, rl.allow("10.0.0.2"), "limits are per IP")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, rl.allow("10.0.0.1"))
}

func TestRespondError_Formats(t *testing.T) {
	env := newTestEnv(t, nil)

	t.Run("json", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/customers/missing", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[ErrorResponse](t, rec)
		assert.Equal(t, "DB004", body.Code)
		assert.Equal(t, "Customer not found", body.Message)
		assert.NotEmpty(t, body.Action)
	})

	t.Run("htmx", func(t *testing.T) {
		rec := env.do(t, http.MethodGet, "/api/customers/missing", nil, "HX-Request", "true")
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rec.Body.String(), `role="alert"`)
		assert.Contains(t, rec.Body.String(), "DB004")
	})
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t, nil)
	in := acme()
	in.CompanyName = "<Acme & Sons>"
	env.seed(t, in, globex())

	rec := env.do(t, http.MethodGet, "/", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<title>TradeScout</title>")
	assert.Contains(t, body, "&lt;Acme &amp; Sons&gt;")
	assert.NotContains(t, body, "<Acme")
	assert.Contains(t, body, "Yüksek")
	assert.Contains(t, body, "AI analysis is disabled")
}

func TestStatus(t *testing.T) {
	mon := store.NewMonitor(store.NewMemory(logging.Discard()), time.Minute, logging.Discard())
	mon.Probe(context.Background())

	env := newTestEnv(t, func(_ *config.Config, d *Deps) { d.Monitor = mon })
	env.seed(t, acme())

	body := decode[StatusResponse](t, env.do(t, http.MethodGet, "/api/status", nil))

	require.NotNil(t, body.Store)
	assert.True(t, body.Store.Connected)
	assert.Equal(t, 2, body.Imports.MaxConcurrent)
	assert.Equal(t, 2, body.Imports.Available)
	assert.False(t, body.AIConfigured)
	assert.Equal(t, 1, body.Customers)
}
