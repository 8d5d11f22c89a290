// Package clients provides the outbound HTTP client used to reach asset hosts.
package clients

import (
	"errors"
	"fmt"
)

var (
	// ErrCircuitOpen is returned without contacting the host while the
	// breaker is open or its half-open trial budget is spent.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrRequestFailed wraps the last transport or server error once every
	// allowed attempt has failed.
	ErrRequestFailed = errors.New("downstream request failed")
)

// StatusError is a 5xx answer. It counts against the breaker and is retried
// while attempts remain.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error: %d", e.StatusCode)
}
