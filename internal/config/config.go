// Package config holds the storefront's runtime configuration, loaded from
// environment variables.
package config

import (
	"time"

	"github.com/ZeyadMohamed5/Morph/pkg/config"
)

// Config is the full storefront configuration.
type Config struct {
	AppName    string `env:"APP_NAME" envDefault:"storefront"`
	APIBaseURL string `env:"API_BASE_URL,required,notEmpty"`
	SiteURL    string `env:"SITE_URL" envDefault:"http://localhost:3000"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPTimeout    time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	HTTPMaxRetries int           `env:"HTTP_MAX_RETRIES" envDefault:"0"`

	// Cart persistence: Redis when an address is configured, a local JSON
	// file otherwise.
	CartSnapshotPath string `env:"CART_SNAPSHOT_PATH" envDefault:"cart.json"`
	RedisAddr        string `env:"REDIS_ADDR"`
	RedisPassword    string `env:"REDIS_PASSWORD"`
	CartClientID     string `env:"CART_CLIENT_ID" envDefault:"default"`

	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`

	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
