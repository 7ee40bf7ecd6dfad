package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/tradescout/tradescout/internal/ai"
	"github.com/tradescout/tradescout/internal/cache"
	"github.com/tradescout/tradescout/internal/config"
	"github.com/tradescout/tradescout/internal/core"
	"github.com/tradescout/tradescout/internal/importer"
	"github.com/tradescout/tradescout/internal/logging"
	"github.com/tradescout/tradescout/internal/store"
	"github.com/tradescout/tradescout/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store", cfg.Database.Driver,
		"mirror", cfg.Mirror.Driver,
		"import_max_concurrent", cfg.Import.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)
	logger.Debug("effective configuration", "config", cfg.String())

	ctx := context.Background()

	gateway, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open customer store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	mirror, closeMirror := openMirror(ctx, cfg, logger)
	defer closeMirror()

	customers := cache.New(gateway, mirror, logger, cache.WithMirrorTimeout(cfg.Mirror.Timeout))
	if err := customers.InitialLoad(ctx); err != nil {
		logger.Warn("customer store unavailable at startup; serving the local copy", "error", err)
	}
	logger.Info("customers loaded", "count", len(customers.Records()))

	chain := ai.NewChain(logger, ai.Arrange(cfg.AI.ProviderOrder,
		ai.NewGemini(ai.ClientConfig{
			APIKey:     cfg.AI.GeminiAPIKey,
			Model:      cfg.AI.GeminiModel,
			BaseURL:    cfg.AI.GeminiBaseURL,
			Timeout:    cfg.AI.Timeout,
			RetryCount: cfg.AI.RetryCount,
		}),
		ai.NewOpenAI(ai.ClientConfig{
			APIKey:     cfg.AI.OpenAIAPIKey,
			Model:      cfg.AI.OpenAIModel,
			BaseURL:    cfg.AI.OpenAIBaseURL,
			Timeout:    cfg.AI.Timeout,
			RetryCount: cfg.AI.RetryCount,
		}),
	)...)
	if chain.Configured() {
		logger.Info("ai providers configured", "providers", chain.Providers())
	} else {
		logger.Warn("no ai provider configured; analysis endpoints will report it")
	}
	analyzer := ai.NewAnalyzer(chain, nil, cfg.AI.ResponseLanguage, ai.Options{
		Temperature: cfg.AI.Temperature,
		MaxTokens:   cfg.AI.MaxTokens,
	}, logger)

	limiter := importer.NewLimiter(cfg.Import.MaxConcurrent, cfg.Import.MaxWaitTime)

	// Background connectivity probe
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	monitor := store.NewMonitor(gateway, cfg.Monitor.ProbeInterval, logger)
	go monitor.Run(jobCtx)

	server := web.NewServer(web.Deps{
		Cache:    customers,
		Gateway:  gateway,
		Catalog:  core.DefaultCatalog(),
		Monitor:  monitor,
		Limiter:  limiter,
		Analyzer: analyzer,
		Factory:  ai.NewFactoryService(chain, nil, cfg.AI.ResponseLanguage),
		Logger:   logger,
	}, cfg)

	// Graceful shutdown
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if st := limiter.Status(); st.Active > 0 {
			logger.Info("waiting for imports to complete", "active", st.Active)
			if err := limiter.WaitForDrain(shutdownCtx); err != nil {
				logger.Warn("imports did not complete in time", "error", err)
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		logger.Error("server stopped", "error", err)
		cancelJobs()
		return
	}
	<-done
	logger.Info("server stopped")
}

// openStore builds the persistence gateway selected by cfg.Database.Driver.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Gateway, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using in-memory customer store; data is lost on restart")
		return store.NewMemory(logger), func() {}, nil
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, nil, err
	}

	// An unreachable database is not fatal: the cache falls back to the
	// mirror and the monitor reports when it comes back.
	if err := pool.Ping(ctx); err != nil {
		logger.Warn("database not reachable at startup", "error", err)
	} else {
		logger.Info("connected to database", "database", poolConfig.ConnConfig.Database)
		if cfg.Database.AutoMigrate {
			if err := store.EnsureSchema(ctx, pool); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
	}

	return store.NewPostgres(pool, cfg.Database.QueryTimeout, logger), pool.Close, nil
}

// openMirror builds the local mirror selected by cfg.Mirror.Driver. A redis
// server that cannot be reached is only logged; mirror failures are
// non-fatal at runtime too.
func openMirror(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Mirror, func()) {
	if cfg.Mirror.Driver != config.DriverRedis {
		return cache.NewMemoryMirror(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Mirror.RedisAddr,
		Password: cfg.Mirror.RedisPassword,
		DB:       cfg.Mirror.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis mirror not reachable at startup", "addr", cfg.Mirror.RedisAddr, "error", err)
	}
	return cache.NewRedisMirror(client, cfg.Mirror.Key), func() { client.Close() }
}
