package dto

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
)

// traceIDKey is the gin context key holding the request trace id.
const traceIDKey = "trace_id"

// requestIDHeader is the fallback source of the trace id.
const requestIDHeader = "X-Request-ID"

// GetTraceID returns the trace id of the request, preferring the value stored
// in the gin context over the request id header.
func GetTraceID(c *gin.Context) string {
	if v, ok := c.Get(traceIDKey); ok {
		id, _ := v.(string)
		return id
	}

	return c.GetHeader(requestIDHeader)
}

// MapDomainError maps a domain error to an HTTP status and error envelope.
// Unavailable and unclassified errors, render failures included, get a fixed
// message so causes such as connection strings never reach the client.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			resp.Error.Message = validationErr.Message
			if validationErr.Field != "" {
				resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsForbidden(err):
		return http.StatusForbidden, NewErrorResponse(ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable,
			NewErrorResponse(ErrorCodeUnavailable, "service temporarily unavailable")

	default:
		return http.StatusInternalServerError,
			NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// HandleError writes the JSON error envelope for err, tagged with the
// request trace id. Internal errors are logged with their cause.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	if resp == nil {
		return
	}

	traceID := GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("internal error",
			slog.Any("error", err),
			slog.String("trace_id", traceID),
		)
	}

	c.JSON(status, resp.WithTraceID(traceID))
}
