package clients

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/jsamuelsen/quote-image-generator/internal/platform/config"
)

// State is the breaker state reported by Client.CircuitState.
type State = gobreaker.State

const (
	StateClosed   = gobreaker.StateClosed
	StateHalfOpen = gobreaker.StateHalfOpen
	StateOpen     = gobreaker.StateOpen
)

const (
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

// newBreaker builds a two-step breaker: Do asks for permission before the
// request and reports the outcome once retries are settled.
//
// The breaker opens after MaxFailures consecutive failed requests, stays open
// for Timeout and then lets HalfOpenLimit trial requests through. That many
// consecutive successful trials close it; any failed trial reopens it.
func newBreaker(name string, cfg config.CircuitBreakerConfig, logger *slog.Logger) *gobreaker.TwoStepCircuitBreaker {
	failures := uint32(orDefault(cfg.MaxFailures, defaultBreakerFailures)) //nolint:gosec // validated positive
	trials := uint32(orDefault(cfg.HalfOpenLimit, 1))                      //nolint:gosec // validated positive

	return gobreaker.NewTwoStepCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: trials,
		Timeout:     orDefault(cfg.Timeout, defaultBreakerTimeout),
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(_ string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}
