// Package web provides the HTTP server and handlers for TradeScout.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tradescout/tradescout/internal/ai"
	"github.com/tradescout/tradescout/internal/cache"
	"github.com/tradescout/tradescout/internal/config"
	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/importer"
	"github.com/tradescout/tradescout/internal/logging"
	"github.com/tradescout/tradescout/internal/store"
	mw "github.com/tradescout/tradescout/internal/web/middleware"
)

const cspPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'"

var errRateLimited = errors.New("rate limit exceeded")

// Deps are the components the handlers call.
type Deps struct {
	Cache    *cache.Cache
	Gateway  store.Gateway
	Catalog  core.Catalog
	Monitor  *store.Monitor // optional
	Limiter  *importer.Limiter
	Analyzer *ai.Analyzer
	Factory  *ai.FactoryService
	Logger   *slog.Logger
}

// Server is the HTTP server for the customer CRM.
type Server struct {
	Deps
	cfg    *config.Config
	now    func() time.Time
	router *chi.Mux
	server *http.Server
	stop   chan struct{}
}

// NewServer creates a new Server instance.
func NewServer(deps Deps, cfg *config.Config) *Server {
	if deps.Limiter == nil {
		deps.Limiter = importer.NewLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime)
	}
	if len(deps.Catalog.Countries) == 0 {
		deps.Catalog = core.DefaultCatalog()
	}
	deps.Logger = logging.OrDefault(deps.Logger)
	if deps.Analyzer == nil || deps.Factory == nil {
		none := ai.NewChain(deps.Logger)
		if deps.Analyzer == nil {
			deps.Analyzer = ai.NewAnalyzer(none, nil, "", ai.Options{}, deps.Logger)
		}
		if deps.Factory == nil {
			deps.Factory = ai.NewFactoryService(none, nil, "")
		}
	}

	s := &Server{
		Deps:   deps,
		cfg:    cfg,
		now:    time.Now,
		router: chi.NewRouter(),
		stop:   make(chan struct{}),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(middleware.Recoverer)
	if d := s.cfg.Server.RequestTimeout; d > 0 {
		s.router.Use(middleware.Timeout(d))
	}
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		limiter := newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute, s.stop)
		s.router.Use(limiter.middleware(s.rejectRateLimited))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleDashboard)
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(&s.cfg.Security))

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", s.handleListCustomers)
			r.Post("/", s.handleCreateCustomer)
			r.Post("/reload", s.handleReload)
			r.Get("/search", s.handleSearch)
			r.Get("/{id}", s.handleGetCustomer)
			r.Put("/{id}", s.handleUpdateCustomer)
			r.Delete("/{id}", s.handleDeleteCustomer)
		})

		r.Get("/catalog", s.handleCatalog)
		r.Get("/stats", s.handleStats)
		r.Get("/status", s.handleStatus)

		// Imports get their own, tighter per-IP limit.
		r.Group(func(r chi.Router) {
			if s.cfg.Rate.Enabled && s.cfg.Rate.ImportLimit > 0 {
				limiter := newRateLimiter(s.cfg.Rate.ImportLimit, time.Minute, s.stop)
				r.Use(limiter.middleware(s.rejectRateLimited))
			}
			r.Post("/import/{format}", s.handleImport)
		})
		r.Get("/import/template/{format}", s.handleImportTemplate)

		r.Get("/export/stats.pdf", s.handleExportStats)
		r.Get("/export/{format}", s.handleExport)

		r.Route("/ai", func(r chi.Router) {
			r.Post("/analysis/{id}", s.handleAnalysis)
			r.Post("/ask/{id}", s.handleAsk)
			r.Get("/market", s.handleMarket)
			r.Get("/competitors", s.handleCompetitors)
			r.Get("/factory/{id}", s.handleFactoryInfo)
			r.Get("/factory/{id}/summary", s.handleFactorySummary)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/investor/{id}", s.handleInvestorReport)
			r.Post("/investor/{id}", s.handleInvestorReport)
			r.Get("/summary", s.handleSummaryReport)
			r.Get("/bulk", s.handleBulkReports)
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	s.Logger.Info("server starting", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	select {
	case <-s.stop:
	default:
		close(s.stop)
	}
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

func (s *Server) rejectRateLimited(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	s.respondError(w, r, errRateLimited, http.StatusTooManyRequests)
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", cspPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimiter is a fixed-window request counter per IP.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rate     int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	tokens    int
	lastReset time.Time
}

// newRateLimiter allows rate requests per window per IP. Stale entries are
// swept until stop is closed.
func newRateLimiter(rate int, window time.Duration, stop <-chan struct{}) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
	}
	go rl.cleanup(stop)
	return rl
}

func (rl *rateLimiter) cleanup(stop <-chan struct{}) {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rl.mu.Lock()
			for ip, v := range rl.visitors {
				if rl.now().Sub(v.lastReset) > rl.window*2 {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// allow consumes a token for ip and reports whether one was available.
func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok || now.Sub(v.lastReset) > rl.window {
		rl.visitors[ip] = &visitor{tokens: rl.rate - 1, lastReset: now}
		return rl.rate > 0
	}
	if v.tokens <= 0 {
		return false
	}
	v.tokens--
	return true
}

func (rl *rateLimiter) middleware(reject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.allow(clientIP(r)) {
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP strips the port from RemoteAddr, which TrustedRealIP has already
// rewritten for trusted proxies.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// writeJSON encodes v as JSON with the given status.
// Encoding errors are only logged since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}
