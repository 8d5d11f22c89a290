package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-image-generator/internal/domain"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
)

// imagePath is answered in plain text even when a handler panics, since its
// consumer is an <img> element rather than a JSON client.
const imagePath = "/api/og"

// Recovery logs a panic with its stack and answers 500 in the shape the
// route normally uses: plain text for the image endpoint and the form page,
// the JSON error envelope under /api. Install it first.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()

			traceID := dto.GetTraceID(c)

			ctxLogger := logging.FromContextOr(ctx, logger)

			ctxLogger.Error("panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			path := c.Request.URL.Path

			switch {
			case path == imagePath:
				c.Abort()
				c.String(http.StatusInternalServerError, domain.MsgImageFailed)
			case strings.HasPrefix(path, "/api/"):
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
			default:
				c.Abort()
				c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}
		}()

		c.Next()
	}
}
