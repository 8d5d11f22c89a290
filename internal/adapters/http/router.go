package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/config"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/telemetry"
)

// DefaultRequestTimeout bounds page and API requests. Rendering a card with
// cold font caches is the slowest path.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig is what SetupRouter wires. Nil handlers leave their routes
// unregistered.
type RouterConfig struct {
	Logger        *slog.Logger
	AppConfig     *config.AppConfig
	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler
	PageHandler   *handlers.PageHandler

	// Timeout applies to the page and /api routes, not to health endpoints. Zero disables it.
	Timeout time.Duration
}

// NewDefaultRouterConfig returns a config with the default timeout. Quote
// and page handlers are attached by the caller.
func NewDefaultRouterConfig(logger *slog.Logger, appCfg *config.AppConfig, health *handlers.HealthHandler) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		HealthHandler: health,
		Timeout:       DefaultRequestTimeout,
	}
}

// SetupRouter installs the middleware chain and the routes:
//
//	/-/live, /-/ready, /-/build, /-/metrics   health and metrics, no timeout
//	GET  /                                    the submission form
//	POST /                                    form submission
//	POST /api/quotes, GET /api/quotes/:id     JSON API
//	GET  /api/og?id=                          the rendered card
//
// Recovery runs first so it also covers the id and tracing middleware.
// Logging runs last so its line carries the request, correlation and trace ids.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(serviceName(cfg))...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	public := engine.Group("")
	if cfg.Timeout > 0 {
		public.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.PageHandler != nil {
		cfg.PageHandler.RegisterPageRoutes(public)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(public.Group("/api"))
	}
}

func serviceName(cfg RouterConfig) string {
	if cfg.AppConfig == nil || cfg.AppConfig.Name == "" {
		return "quote-image-generator"
	}

	return cfg.AppConfig.Name
}
