package acl

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
)

func TestMapHTTPError_StatusCodes(t *testing.T) {
	tests := []struct {
		status   int
		errCheck func(error) bool
	}{
		{http.StatusNotFound, domain.IsNotFound},
		{http.StatusGone, domain.IsNotFound},
		{http.StatusUnauthorized, domain.IsForbidden},
		{http.StatusForbidden, domain.IsForbidden},
		{http.StatusTooManyRequests, domain.IsUnavailable},
		{http.StatusBadRequest, domain.IsUnavailable},
		{http.StatusInternalServerError, domain.IsUnavailable},
		{http.StatusBadGateway, domain.IsUnavailable},
		{http.StatusServiceUnavailable, domain.IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			resp := &http.Response{StatusCode: tt.status}

			err := MapHTTPError(resp, nil, "fonts", "fetch font", "bold")

			require.Error(t, err)
			assert.True(t, tt.errCheck(err), "unexpected error: %v", err)
		})
	}
}

func TestMapHTTPError_NotFoundCarriesEntity(t *testing.T) {
	err := MapHTTPError(&http.Response{StatusCode: http.StatusNotFound}, nil, "fonts", "fetch font", "bold")

	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "fonts", notFound.Entity)
	assert.Equal(t, "bold", notFound.ID)
}

func TestMapHTTPError_ClientErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"circuit open", clients.ErrCircuitOpen, "circuit breaker open during fetch font"},
		{"retries exhausted", fmt.Errorf("%w: server error: 503", clients.ErrRequestFailed), "downstream request failed"},
		{"other", errors.New("dial tcp: connection refused"), "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapHTTPError(nil, tt.err, "fonts", "fetch font", "regular")

			assert.True(t, domain.IsUnavailable(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestMapHTTPError_SuccessReturnsNil(t *testing.T) {
	assert.NoError(t, MapHTTPError(&http.Response{StatusCode: http.StatusOK}, nil, "fonts", "fetch font", ""))
	assert.NoError(t, MapHTTPError(&http.Response{StatusCode: http.StatusNoContent}, nil, "fonts", "fetch font", ""))
}

func TestMapHTTPError_NilResponse(t *testing.T) {
	err := MapHTTPError(nil, nil, "fonts", "fetch font", "")

	assert.True(t, domain.IsUnavailable(err))
	assert.Contains(t, err.Error(), "no response received")
}
