package ports

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrDuplicateChecker is returned when a checker name is registered twice.
var ErrDuplicateChecker = errors.New("duplicate health checker")

// DefaultCheckTimeout bounds each check run by DefaultHealthRegistry.
const DefaultCheckTimeout = 2 * time.Second

// HealthChecker reports the health of one dependency: the quote store, the
// font host or the entry cache.
type HealthChecker interface {
	// Name identifies the check in /-/ready output. It must be unique.
	Name() string

	// Check returns nil when the dependency is usable. It must honour ctx.
	Check(ctx context.Context) error
}

// HealthRegistry runs the registered checks for the readiness endpoint.
type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

// HealthStatus is the state of one check or of the whole instance.
type HealthStatus string

const (
	HealthStatusHealthy HealthStatus = "healthy"

	// HealthStatusDegraded means only optional checks failed, e.g. the cache
	// is down but the store still answers.
	HealthStatusDegraded HealthStatus = "degraded"

	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthResult aggregates one CheckAll run.
type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

type registered struct {
	checker  HealthChecker
	optional bool
}

// DefaultHealthRegistry runs checks concurrently, each under its own timeout.
// It is safe for concurrent use.
type DefaultHealthRegistry struct {
	mu      sync.RWMutex
	checks  []registered
	timeout time.Duration
	nowFunc func() time.Time
}

// NewHealthRegistry creates an empty registry using DefaultCheckTimeout.
func NewHealthRegistry() *DefaultHealthRegistry {
	return &DefaultHealthRegistry{timeout: DefaultCheckTimeout, nowFunc: time.Now}
}

// WithTimeout sets the per-check timeout and returns r.
func (r *DefaultHealthRegistry) WithTimeout(d time.Duration) *DefaultHealthRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d > 0 {
		r.timeout = d
	}

	return r
}

// Register adds a critical check: its failure makes the instance unhealthy.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	return r.add(checker, false)
}

// RegisterOptional adds a check whose failure only degrades the instance.
func (r *DefaultHealthRegistry) RegisterOptional(checker HealthChecker) error {
	return r.add(checker, true)
}

func (r *DefaultHealthRegistry) add(checker HealthChecker, optional bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := checker.Name()
	for _, c := range r.checks {
		if c.checker.Name() == name {
			return fmt.Errorf("%w: %s", ErrDuplicateChecker, name)
		}
	}

	r.checks = append(r.checks, registered{checker: checker, optional: optional})

	return nil
}

// Names lists the registered checks in registration order.
func (r *DefaultHealthRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.checks))
	for i, c := range r.checks {
		names[i] = c.checker.Name()
	}

	return names
}

// CheckAll runs every check and waits for all of them.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checks := append([]registered(nil), r.checks...)
	timeout := r.timeout
	r.mu.RUnlock()

	result := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checks)),
		Timestamp: r.nowFunc(),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, c := range checks {
		wg.Go(func() {
			res := run(ctx, c, timeout)

			mu.Lock()
			defer mu.Unlock()

			result.Checks[c.checker.Name()] = res
			result.Status = worse(result.Status, res.Status)
		})
	}

	wg.Wait()

	return result
}

func run(ctx context.Context, c registered, timeout time.Duration) *CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := c.checker.Check(ctx)
	res := &CheckResult{Status: HealthStatusHealthy, Duration: time.Since(start)}

	if err != nil {
		res.Status = HealthStatusUnhealthy
		if c.optional {
			res.Status = HealthStatusDegraded
		}

		res.Message = err.Error()
	}

	return res
}

var severity = map[HealthStatus]int{
	HealthStatusHealthy:   0,
	HealthStatusDegraded:  1,
	HealthStatusUnhealthy: 2,
}

func worse(a, b HealthStatus) HealthStatus {
	if severity[b] > severity[a] {
		return b
	}

	return a
}
