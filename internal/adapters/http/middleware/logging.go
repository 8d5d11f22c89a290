package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-image-generator/internal/platform/logging"
)

// Logging returns middleware that logs one line per completed request:
// method, path, status, latency and bytes written, plus the quote id when the
// request addresses one (the id query parameter or path parameter).
//
// Paths under /-/ are never logged, nor are the exact paths in skipPaths.
// The level follows the status: error for 5xx, warn for 4xx, info otherwise.
func Logging(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if _, ok := skip[path]; ok || strings.HasPrefix(path, "/-/") {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		} else if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}

		attrs := []slog.Attr{
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("latency", latency),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}

		if id := quoteID(c); id != "" {
			attrs = append(attrs, slog.String("quote_id", id))
		}

		if route := c.FullPath(); route != "" {
			attrs = append(attrs, slog.String("route", route))
		}

		ctxLogger := logging.FromContextOr(c.Request.Context(), logger)
		ctxLogger.LogAttrs(c.Request.Context(), level, "request completed", attrs...)
	}
}

func quoteID(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}

	return c.Query("id")
}
