package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/config"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
)

const instrumentationName = "github.com/jsamuelsen/quote-image-generator/internal/adapters/clients"

const (
	defaultTimeout         = 30 * time.Second
	defaultInitialInterval = 100 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
	defaultMultiplier      = 2.0

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 90 * time.Second

	// drainLimit bounds how much of a failed body is read to reuse the connection.
	drainLimit = 64 << 10
)

// Config configures a Client.
type Config struct {
	// BaseURL is prefixed to every request path, e.g. "https://fonts.gstatic.com".
	BaseURL string

	// ServiceName names the host in logs, spans, metrics and health checks.
	ServiceName string

	// Timeout bounds one attempt, not the whole call.
	Timeout time.Duration

	Retry     config.RetryConfig
	Circuit   config.CircuitBreakerConfig
	Transport config.TransportConfig

	// UserAgent is sent with every request when set.
	UserAgent string

	Logger *slog.Logger
}

// Client is an instrumented HTTP client for one downstream host.
//
// Every request passes a circuit breaker, is retried with exponential backoff
// on network errors and 5xx answers, carries the caller's request and
// correlation ids and the trace context, and is recorded as a client span and
// in the http.client metrics.
type Client struct {
	http    *http.Client
	baseURL string
	name    string
	cfg     Config
	logger  *slog.Logger
	breaker *gobreaker.TwoStepCircuitBreaker

	tracer   trace.Tracer
	duration metric.Float64Histogram
	requests metric.Int64Counter
}

// New creates a client. A zero MaxAttempts means a single attempt.
func New(cfg *Config) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.ServiceName == "" {
		return nil, errors.New("service name is required")
	}

	c := *cfg
	c.Timeout = orDefault(c.Timeout, defaultTimeout)
	c.Retry.MaxAttempts = orDefault(c.Retry.MaxAttempts, 1)

	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "clients.Client"), slog.String("downstream", c.ServiceName))

	meter := otel.Meter(instrumentationName)

	duration, err := meter.Float64Histogram("http.client.request.duration",
		metric.WithDescription("Duration of outbound HTTP requests, retries included"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration metric: %w", err)
	}

	requests, err := meter.Int64Counter("http.client.request.total",
		metric.WithDescription("Outbound HTTP requests by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request counter: %w", err)
	}

	return &Client{
		http: &http.Client{
			Timeout: c.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        orDefault(c.Transport.MaxIdleConns, defaultMaxIdleConns),
				MaxIdleConnsPerHost: orDefault(c.Transport.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost),
				IdleConnTimeout:     orDefault(c.Transport.IdleConnTimeout, defaultIdleConnTimeout),
			},
		},
		baseURL:  strings.TrimSuffix(c.BaseURL, "/"),
		name:     c.ServiceName,
		cfg:      c,
		logger:   logger,
		breaker:  newBreaker(c.ServiceName, c.Circuit, logger),
		tracer:   otel.Tracer(instrumentationName),
		duration: duration,
		requests: requests,
	}, nil
}

// Get issues a GET for path relative to the base URL.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// Head issues a HEAD for path relative to the base URL.
func (c *Client) Head(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.buildURL(path), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	return c.Do(ctx, req)
}

// Do sends req. Requests with a body are not rewound between attempts, so
// only bodiless requests should be sent with more than one attempt.
//
// A response is returned for every status below 500; the caller owns its body.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()
	logger := logging.FromContext(ctx).With(
		slog.String("downstream", c.name),
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
	)

	done, err := c.breaker.Allow()
	if err != nil {
		c.record(ctx, req.Method, 0, start, "circuit_open")
		logger.Warn("request blocked by circuit breaker")

		return nil, ErrCircuitOpen
	}

	c.setHeaders(ctx, req)

	ctx, span := c.tracer.Start(ctx, "HTTP "+req.Method+" "+c.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.url", req.URL.String()),
			attribute.String("peer.service", c.name),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	attempt := 0
	resp, err := backoff.Retry(ctx,
		func() (*http.Response, error) {
			attempt++
			return c.attempt(ctx, req)
		},
		backoff.WithBackOff(c.backOff()),
		backoff.WithMaxTries(uint(c.cfg.Retry.MaxAttempts)), //nolint:gosec // validated positive
		backoff.WithNotify(func(err error, wait time.Duration) {
			logger.Debug("retrying request",
				slog.Int("attempt", attempt),
				slog.Duration("backoff", wait),
				slog.Any("error", err),
			)
		}),
	)

	done(err == nil)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		c.record(ctx, req.Method, 0, start, "error")
		logger.Error("request failed",
			slog.Int("attempts", attempt),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)

		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(resp.StatusCode))
	}

	c.record(ctx, req.Method, resp.StatusCode, start, strconv.Itoa(resp.StatusCode/100)+"xx")
	logger.Debug("request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// attempt sends req once. Errors that another attempt cannot fix are
// marked permanent.
func (c *Client) attempt(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req.WithContext(ctx))
	if err != nil {
		if isRetryable(err) {
			return nil, err
		}

		return nil, backoff.Permanent(err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, drainLimit))
		_ = resp.Body.Close()

		return nil, &StatusError{StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// CircuitState reports the breaker state.
func (c *Client) CircuitState() State {
	return c.breaker.State()
}

// Name is the configured service name.
func (c *Client) Name() string {
	return c.name
}

func (c *Client) backOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = orDefault(c.cfg.Retry.InitialInterval, defaultInitialInterval)
	b.MaxInterval = orDefault(c.cfg.Retry.MaxInterval, defaultMaxInterval)
	b.Multiplier = orDefault(c.cfg.Retry.Multiplier, defaultMultiplier)
	b.RandomizationFactor = c.cfg.Retry.JitterFactor

	return b
}

func (c *Client) setHeaders(ctx context.Context, req *http.Request) {
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderRequestID, id)
	}

	if id := middleware.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.HeaderCorrelationID, id)
	}

	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return c.baseURL + path
}

func (c *Client) record(ctx context.Context, method string, status int, start time.Time, result string) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("peer.service", c.name),
		attribute.String("result", result),
	}

	if status > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", status))
	}

	opt := metric.WithAttributes(attrs...)
	c.duration.Record(ctx, time.Since(start).Seconds(), opt)
	c.requests.Add(ctx, 1, opt)
}

func orDefault[T int | time.Duration | float64](v, def T) T {
	if v > 0 {
		return v
	}

	return def
}

// isRetryable accepts network timeouts and connection level failures. A
// canceled or expired context is never retried.
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
