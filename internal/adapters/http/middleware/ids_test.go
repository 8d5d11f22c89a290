package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type seenIDs struct {
	ginRequest, ginCorrelation string
	ctxRequest, ctxCorrelation string
}

func idRouter(seen *seenIDs) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), CorrelationID())
	r.GET("/", func(c *gin.Context) {
		seen.ginRequest = c.GetString(ContextKeyRequestID)
		seen.ginCorrelation = c.GetString(ContextKeyCorrelationID)
		seen.ctxRequest = RequestIDFromContext(c.Request.Context())
		seen.ctxCorrelation = CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	return r
}

func TestIDs_KeepsValidIncomingIDs(t *testing.T) {
	var seen seenIDs

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-42")
	req.Header.Set(HeaderCorrelationID, "checkout:7f3a")

	w := httptest.NewRecorder()
	idRouter(&seen).ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "checkout:7f3a", w.Header().Get(HeaderCorrelationID))
	assert.Equal(t, seenIDs{"req-42", "checkout:7f3a", "req-42", "checkout:7f3a"}, seen)
}

func TestIDs_MintsMissingOrUnsafeIDs(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"spaces", "id with spaces"},
		{"newline", "abc\ninjected=1"},
		{"too long", strings.Repeat("a", maxIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen seenIDs

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(HeaderRequestID, tt.header)
			}

			w := httptest.NewRecorder()
			idRouter(&seen).ServeHTTP(w, req)

			got := w.Header().Get(HeaderRequestID)
			_, err := uuid.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, got, seen.ctxRequest)
			assert.NotEqual(t, seen.ginRequest, seen.ginCorrelation, "ids are minted independently")
		})
	}
}

func TestIDFromContext_Unset(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
}

func TestValidID(t *testing.T) {
	assert.True(t, validID(uuid.NewString()))
	assert.True(t, validID("a.b_c-d:1"))
	assert.True(t, validID(strings.Repeat("x", maxIDLength)))
	assert.False(t, validID(""))
	assert.False(t, validID("ü"))
	assert.False(t, validID("<script>"))
}
