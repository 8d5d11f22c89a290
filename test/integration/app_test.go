//go:build integration

package integration

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/clients/acl"
	httpadapter "github.com/jsamuelsen/quote-image-generator/internal/adapters/http"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/render"
	"github.com/jsamuelsen/quote-image-generator/internal/adapters/repository"
	"github.com/jsamuelsen/quote-image-generator/internal/app"
	"github.com/jsamuelsen/quote-image-generator/internal/platform/config"
	"github.com/jsamuelsen/quote-image-generator/internal/ports"
)

const (
	regularFontPath = "/s/go/regular.ttf"
	boldFontPath    = "/s/go/bold.ttf"
)

// fontHost serves the Go fonts the way a static asset host would.
// Setting failing makes every request answer 503.
type fontHost struct {
	*httptest.Server
	requests atomic.Int32
	failing  atomic.Bool
}

func newFontHost() *fontHost {
	h := &fontHost{}
	h.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.requests.Add(1)

		if h.failing.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		var data []byte

		switch r.URL.Path {
		case regularFontPath:
			data = goregular.TTF
		case boldFontPath:
			data = gobold.TTF
		default:
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "font/ttf")
		_, _ = w.Write(data)
	}))

	return h
}

// testApp is the service wired as in cmd/service, backed by the memory store
// and a local font host.
type testApp struct {
	Server *httptest.Server
	Fonts  *fontHost
	Store  *repository.MemoryStore
	Client *clients.Client
}

func (a *testApp) Close() {
	a.Server.Close()
	a.Fonts.Close()
}

func newTestApp() (*testApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fonts := newFontHost()

	httpClient, err := clients.New(&clients.Config{
		BaseURL:     fonts.URL,
		ServiceName: "fonts",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     100 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   3,
			Timeout:       200 * time.Millisecond,
			HalfOpenLimit: 1,
		},
		Logger: logger,
	})
	if err != nil {
		fonts.Close()
		return nil, err
	}

	fontClient := acl.NewFontClient(acl.FontClientConfig{
		Client:      httpClient,
		RegularPath: regularFontPath,
		BoldPath:    boldFontPath,
		Logger:      logger,
	})

	store := repository.NewMemoryStore()

	registry := ports.NewHealthRegistry()
	_ = registry.Register(store)
	_ = registry.RegisterOptional(fontClient)

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Store:    store,
		Fonts:    fontClient,
		Renderer: render.NewCardRenderer(),
		Logger:   logger,
	})

	server := httpadapter.New(&config.ServerConfig{MaxRequestSize: config.DefaultMaxRequestSize}, logger)

	quoteHandler := handlers.NewQuoteHandler(service)
	routerCfg := httpadapter.NewDefaultRouterConfig(logger,
		&config.AppConfig{Name: "quote-image-generator", Version: "test", Environment: "test"},
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "none", "now")),
	)
	routerCfg.QuoteHandler = quoteHandler
	routerCfg.PageHandler = handlers.NewPageHandler(quoteHandler, "")
	httpadapter.SetupRouter(server.Engine(), routerCfg)

	return &testApp{
		Server: httptest.NewServer(server.Engine()),
		Fonts:  fonts,
		Store:  store,
		Client: httpClient,
	}, nil
}

func startTestApp(t *testing.T) *testApp {
	t.Helper()

	a, err := newTestApp()
	if err != nil {
		t.Fatalf("starting test app: %v", err)
	}

	t.Cleanup(a.Close)

	return a
}
