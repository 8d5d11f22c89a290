// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/cache"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/database"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/render"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/repository"
	"github.com/jsamuelsen/quote-image-generator/internal/app"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/config"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	quoteMetrics, err := telemetry.NewQuoteMetrics(metricsRegistry)
	if err != nil {
		return fmt.Errorf("registering quote metrics: %w", err)
	}

	// 5. Create health registry
	healthRegistry := ports.NewHealthRegistry()

	// 6. Open the quote store
	store, closeStore, err := openStore(ctx, cfg, logger, healthRegistry)
	if err != nil {
		return err
	}
	defer closeStore()

	// 7. Create HTTP client and font source (ACL pattern)
	httpClient, err := clients.New(&clients.Config{
		BaseURL:     cfg.Services.Fonts.BaseURL,
		ServiceName: cfg.Services.Fonts.Name,
		Timeout:     cfg.Client.Timeout,
		Retry:       cfg.Client.Retry,
		Circuit:     cfg.Client.CircuitBreaker,
		Transport:   cfg.Client.Transport,
		UserAgent:   cfg.App.Name + "/" + cfg.App.Version,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("creating HTTP client: %w", err)
	}

	fontClient := acl.NewFontClient(acl.FontClientConfig{
		Client:      httpClient,
		RegularPath: cfg.Fonts.RegularPath,
		BoldPath:    cfg.Fonts.BoldPath,
		MaxBytes:    cfg.Fonts.MaxBytes,
		Logger:      logger,
	})

	// Fonts only matter to /api/og, so a font host outage degrades the instance.
	if err := healthRegistry.RegisterOptional(fontClient); err != nil {
		return fmt.Errorf("registering font client health check: %w", err)
	}

	// 8. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Store:    store,
		Fonts:    fontClient,
		Renderer: render.NewCardRenderer(),
		Metrics:  quoteMetrics,
		Logger:   logger,
	})

	// 9. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo, handlers.WithGatherer(metricsRegistry))
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	pageHandler := handlers.NewPageHandler(quoteHandler, "")

	// 10. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 11. Setup router with all middleware and routes
	routerCfg := http.NewDefaultRouterConfig(logger, &cfg.App, healthHandler)
	routerCfg.QuoteHandler = quoteHandler
	routerCfg.PageHandler = pageHandler
	http.SetupRouter(server.Engine(), routerCfg)

	// 12. Bind first so a taken port fails startup, then serve until SIGINT/SIGTERM
	if err := server.Listen(); err != nil {
		return err
	}

	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("shutdown complete")

	return nil
}

// openStore builds the quote store selected by cfg.Database.Driver, wraps it
// with the Redis cache when enabled and registers the health checks. The
// returned func releases whatever was opened.
func openStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	registry *ports.DefaultHealthRegistry,
) (ports.QuoteStore, func(), error) {
	var (
		store   ports.QuoteStore
		closers []func() error
	)

	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				logger.Error("closing store resource", slog.Any("error", err))
			}
		}
	}

	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.Connect(database.Config{
			DSN:             cfg.Database.DSN,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
			LogLevel:        cfg.Database.LogLevel,
			Logger:          logger,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting database: %w", err)
		}

		closers = append(closers, func() error { return database.Close(db) })

		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(ctx, db, logger); err != nil {
				closeAll()
				return nil, nil, fmt.Errorf("migrating database: %w", err)
			}
		}

		gormStore := repository.NewGormStore(db)
		if err := registry.Register(gormStore); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("registering database health check: %w", err)
		}

		store = gormStore
	default:
		logger.Warn("using in-memory quote store, entries are lost on restart")

		memStore := repository.NewMemoryStore()
		if err := registry.Register(memStore); err != nil {
			return nil, nil, fmt.Errorf("registering store health check: %w", err)
		}

		store = memStore
	}

	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.URL)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("connecting cache: %w", err)
		}

		closers = append(closers, redisCache.Close)

		if err := registry.RegisterOptional(redisCache); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("registering cache health check: %w", err)
		}

		store = repository.NewCachedStore(repository.CachedStoreConfig{
			Store:     store,
			Cache:     redisCache,
			KeyPrefix: cfg.Cache.KeyPrefix,
			TTL:       cfg.Cache.TTL,
			Logger:    logger,
		})
	}

	return store, closeAll, nil
}
