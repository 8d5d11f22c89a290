package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "test-service",
			Version:     "1.0.0",
			Environment: "local",
		},
		Server: ServerConfig{
			Port:            8080,
			Host:            "0.0.0.0",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxRequestSize:  1048576,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Client: ClientConfig{
			Timeout: 30 * time.Second,
			Retry: RetryConfig{
				MaxAttempts:     3,
				InitialInterval: 100 * time.Millisecond,
				MaxInterval:     5 * time.Second,
				Multiplier:      2.0,
				JitterFactor:    0.25,
			},
			CircuitBreaker: CircuitBreakerConfig{
				MaxFailures:   5,
				Timeout:       30 * time.Second,
				HalfOpenLimit: 3,
			},
			Transport: TransportConfig{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		Services: ServicesConfig{
			Fonts: ServiceEndpointConfig{
				BaseURL: "https://fonts.gstatic.com",
				Name:    "fonts",
			},
		},
		Fonts: FontsConfig{
			Family:      "Inter",
			RegularPath: "/s/inter/v13/UcCO3FfAGk-q5w-Qp-EC.woff",
			BoldPath:    "/s/inter/v13/UcC73FfXr-iS8PCLq8-k.woff",
			MaxBytes:    4 << 20,
		},
		Database: DatabaseConfig{
			Driver: "memory",
		},
	}
}

func TestConfig_Validate_Valid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfig_Validate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing app name", func(c *Config) { c.App.Name = "" }, "app.name is required"},
		{"unknown environment", func(c *Config) { c.App.Environment = "staging" }, "app.environment must be one of: local dev qa prod test"},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, "server.port must be at most 65535"},
		{"missing host", func(c *Config) { c.Server.Host = "" }, "server.host is required"},
		{"read timeout too short", func(c *Config) { c.Server.ReadTimeout = 500 * time.Millisecond }, "server.read_timeout must be at least 1s"},
		{"no body limit", func(c *Config) { c.Server.MaxRequestSize = 0 }, "server.max_request_size is required"},
		{"log level is case sensitive", func(c *Config) { c.Log.Level = "INFO" }, "log.level must be one of"},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }, "log.format must be one of: json text pretty"},
		{"log file without path", func(c *Config) {
			c.Log.File.Enabled = true
			c.Log.File.Path = ""
		}, "log.file.path is required when Enabled true"},
		{"oversized log file", func(c *Config) {
			c.Log.File.Enabled = true
			c.Log.File.Path = "/var/log/quotes.log"
			c.Log.File.MaxSizeMB = 2048
		}, "log.file.max_size must be at most 1024"},
		{"telemetry without endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.ServiceName = "quote-image-generator"
		}, "telemetry.endpoint is required when Enabled true"},
		{"telemetry with bad endpoint", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.ServiceName = "quote-image-generator"
			c.Telemetry.Endpoint = "not a url"
		}, "telemetry.endpoint must be a valid URL"},
		{"sampling above one", func(c *Config) { c.Telemetry.SamplingRate = 1.5 }, "telemetry.sampling_rate must be at most 1"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = "postgres" }, "database.dsn is required when Driver postgres"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "sqlite" }, "database.driver must be one of: postgres memory"},
		{"unknown gorm log level", func(c *Config) { c.Database.LogLevel = "trace" }, "database.log_level must be one of"},
		{"cache without url", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.TTL = time.Hour
		}, "cache.url is required when Enabled true"},
		{"relative font path", func(c *Config) { c.Fonts.RegularPath = "s/inter.woff" }, `fonts.regular_path must start with "/"`},
		{"font host not a url", func(c *Config) { c.Services.Fonts.BaseURL = "fonts" }, "services.fonts.base_url must be a valid URL"},
		{"tiny font cap", func(c *Config) { c.Fonts.MaxBytes = 10 }, "fonts.max_bytes must be at least 1024"},
		{"client timeout too short", func(c *Config) { c.Client.Timeout = 10 * time.Millisecond }, "client.timeout must be at least 100ms"},
		{"too many attempts", func(c *Config) { c.Client.Retry.MaxAttempts = 11 }, "client.retry.max_attempts must be at most 10"},
		{"multiplier too small", func(c *Config) { c.Client.Retry.Multiplier = 1.0 }, "client.retry.multiplier must be at least 1.1"},
		{"max interval below initial", func(c *Config) {
			c.Client.Retry.InitialInterval = 2 * time.Second
			c.Client.Retry.MaxInterval = time.Second
		}, "client.retry.max_interval must not be less than initial_interval"},
		{"breaker without failures", func(c *Config) { c.Client.CircuitBreaker.MaxFailures = 0 }, "client.circuit_breaker.max_failures is required"},
		{"breaker timeout too short", func(c *Config) { c.Client.CircuitBreaker.Timeout = time.Millisecond }, "client.circuit_breaker.timeout must be at least 1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Validate_Accepts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"every environment", func(c *Config) { c.App.Environment = "prod" }},
		{"trace logging", func(c *Config) { c.Log.Level = "trace" }},
		{"pretty logs", func(c *Config) { c.Log.Format = "pretty" }},
		{"postgres with dsn", func(c *Config) {
			c.Database.Driver = "postgres"
			c.Database.DSN = "postgres://quotes:secret@db:5432/quotes"
		}},
		{"cache enabled", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.URL = "redis://cache:6379/0"
			c.Cache.TTL = time.Hour
		}},
		{"telemetry enabled", func(c *Config) {
			c.Telemetry.Enabled = true
			c.Telemetry.Endpoint = "http://otel-collector:4317"
			c.Telemetry.ServiceName = "quote-image-generator"
		}},
		{"equal retry intervals", func(c *Config) {
			c.Client.Retry.InitialInterval = time.Second
			c.Client.Retry.MaxInterval = time.Second
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			require.NoError(t, cfg.Validate())
		})
	}
}

func TestConfig_Validate_ListsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.App.Name = ""
	cfg.App.Version = ""
	cfg.Server.Port = -1

	err := cfg.Validate()
	require.Error(t, err)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "config validation failed:"))
	assert.Contains(t, msg, "app.name is required")
	assert.Contains(t, msg, "app.version is required")
	assert.Contains(t, msg, "server.port")
}

func TestKeyPath(t *testing.T) {
	assert.Equal(t, "server.port", keyPath("Config.server.port"))
	assert.Equal(t, "client.retry.max_attempts", keyPath("Config.client.retry.max_attempts"))
	assert.Equal(t, "port", keyPath("port"))
}
