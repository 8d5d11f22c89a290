package acl

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

// MapHTTPError turns the outcome of one request to an asset host into a
// domain error, or nil for a 2xx response. clientErr takes precedence over
// resp. entityID names the missing asset when the host answers 404 or 410.
//
// Asset hosts answer errors with HTML or plain text, so only the status code
// is looked at.
func MapHTTPError(resp *http.Response, clientErr error, host, operation, entityID string) error {
	switch {
	case clientErr != nil && errors.Is(clientErr, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(host, "circuit breaker open during "+operation)
	case clientErr != nil:
		return domain.NewUnavailableError(host, fmt.Sprintf("%s failed: %v", operation, clientErr))
	case resp == nil:
		return domain.NewUnavailableError(host, "no response received")
	case resp.StatusCode/100 == 2:
		return nil
	}

	return statusError(resp.StatusCode, host, operation, entityID)
}

// statusError classifies a non-2xx status. Anything other than a missing or
// refused asset means the host is unusable for now.
func statusError(status int, host, operation, entityID string) error {
	switch status {
	case http.StatusNotFound, http.StatusGone:
		return domain.NewNotFoundError(host, entityID)
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewForbiddenError(operation, fmt.Sprintf("%s returned %d", host, status))
	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(host, "rate limit exceeded")
	}

	return domain.NewUnavailableError(host, fmt.Sprintf("%s failed with status %d", operation, status))
}
