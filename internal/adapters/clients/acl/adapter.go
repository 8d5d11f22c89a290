package acl

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

// BaseAdapter provides common functionality for ACL adapters.
// Embed this in service-specific adapters.
type BaseAdapter struct {
	client      *clients.Client
	serviceName string
}

// NewBaseAdapter creates a new base adapter with the given client and service name.
func NewBaseAdapter(client *clients.Client, serviceName string) BaseAdapter {
	return BaseAdapter{
		client:      client,
		serviceName: serviceName,
	}
}

// ServiceName returns the name of the external service.
func (a *BaseAdapter) ServiceName() string {
	return a.serviceName
}

// GetBytes performs a GET request and reads at most maxBytes of the body.
// Failures are returned as domain errors; a body larger than maxBytes is an
// unavailable error since the asset cannot be trusted.
func (a *BaseAdapter) GetBytes(ctx context.Context, path, operation, entityID string, maxBytes int64) ([]byte, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.serviceName, operation, entityID)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBytes))

		return nil, MapHTTPError(resp, nil, a.serviceName, operation, entityID)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, domain.NewUnavailableError(a.serviceName, fmt.Sprintf("%s: reading body: %v", operation, err))
	}

	if int64(len(body)) > maxBytes {
		return nil, domain.NewUnavailableError(a.serviceName,
			fmt.Sprintf("%s: body exceeds %d bytes", operation, maxBytes))
	}

	if len(body) == 0 {
		return nil, domain.NewUnavailableError(a.serviceName, operation+": empty body")
	}

	return body, nil
}

// Head checks that path exists without downloading it. Failures are domain
// errors, as with GetBytes.
func (a *BaseAdapter) Head(ctx context.Context, path, operation, entityID string) error {
	resp, err := a.client.Head(ctx, path)
	if err != nil {
		return MapHTTPError(nil, err, a.serviceName, operation, entityID)
	}

	_ = resp.Body.Close()

	return MapHTTPError(resp, nil, a.serviceName, operation, entityID)
}
