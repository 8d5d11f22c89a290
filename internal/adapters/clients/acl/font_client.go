package acl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

// FontClientConfig contains configuration for the font client.
type FontClientConfig struct {
	// Client is the HTTP client to use for requests.
	// The client's BaseURL should be set to the font host.
	Client *clients.Client

	// RegularPath and BoldPath locate the two weights on the host.
	RegularPath string
	BoldPath    string

	// MaxBytes caps each download.
	MaxBytes int64

	// Logger is the structured logger.
	Logger *slog.Logger
}

// FontClient implements ports.FontSource by downloading font files from a
// static asset host such as fonts.gstatic.com.
type FontClient struct {
	BaseAdapter

	paths    map[domain.FontWeight]string
	maxBytes int64
	logger   *slog.Logger
}

var (
	_ ports.FontSource    = (*FontClient)(nil)
	_ ports.HealthChecker = (*FontClient)(nil)
)

// NewFontClient creates a new font client adapter.
// Panics if Client is nil. Defaults logger to slog.Default() if nil.
func NewFontClient(cfg FontClientConfig) *FontClient {
	if cfg.Client == nil {
		panic("FontClient: Client is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 4 << 20
	}

	return &FontClient{
		BaseAdapter: NewBaseAdapter(cfg.Client, "fonts"),
		paths: map[domain.FontWeight]string{
			domain.FontWeightRegular: cfg.RegularPath,
			domain.FontWeightBold:    cfg.BoldPath,
		},
		maxBytes: maxBytes,
		logger:   logger,
	}
}

// Fetch downloads the font file for the given weight.
// Implements ports.FontSource.
func (c *FontClient) Fetch(ctx context.Context, weight domain.FontWeight) ([]byte, error) {
	path, ok := c.paths[weight]
	if !ok || path == "" {
		return nil, domain.NewNotFoundError("font", weight.String())
	}

	c.logger.Log(ctx, logging.LevelTrace, "starting request",
		slog.String("path", path),
		slog.String("weight", weight.String()))

	data, err := c.GetBytes(ctx, path, "fetch font", weight.String(), c.maxBytes)
	if err != nil {
		c.logger.WarnContext(ctx, "font download failed",
			slog.String("weight", weight.String()),
			slog.Any("error", err))

		return nil, err
	}

	c.logger.Log(ctx, logging.LevelTrace, "request complete",
		slog.String("path", path),
		slog.Int("bytes", len(data)))

	return data, nil
}

// Name returns the health check name for this client.
// Implements ports.HealthChecker.
func (c *FontClient) Name() string {
	return c.ServiceName()
}

// Check asks the host whether the regular weight is still there with a HEAD
// request, so a check never downloads a font. An open breaker fails the
// check without touching the network.
// Implements ports.HealthChecker.
func (c *FontClient) Check(ctx context.Context) error {
	if c.client.CircuitState() == clients.StateOpen {
		return fmt.Errorf("font host check: %w", domain.NewUnavailableError(c.ServiceName(), "circuit breaker open"))
	}

	weight := domain.FontWeightRegular

	if err := c.Head(ctx, c.paths[weight], "check font", weight.String()); err != nil {
		return fmt.Errorf("font host check: %w", err)
	}

	return nil
}
