package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the reporting gateway.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	CISAPIURL   string `envconfig:"CIS_API_URL" required:"true"`
	CISAPIToken string `envconfig:"CIS_API_TOKEN" required:"true"`

	RedisAddr string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	DraftTTL  time.Duration `envconfig:"DRAFT_TTL" default:"72h"`

	ReportFanOut      int `envconfig:"REPORT_FANOUT" default:"8"`
	ExpiryAlertDays   int `envconfig:"EXPIRY_ALERT_DAYS" default:"30"`
	LowStockThreshold int `envconfig:"LOW_STOCK_THRESHOLD" default:"10"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.CISAPIURL == "" {
		return nil, errors.New("upstream api url must be provided")
	}
	if cfg.CISAPIToken == "" {
		return nil, errors.New("upstream api token must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
