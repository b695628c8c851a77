// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// DefaultMaxUploadBytes is the upload size ceiling when MAX_UPLOAD_BYTES is unset (100 MiB).
const DefaultMaxUploadBytes = 100 << 20

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8080).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; when empty the server runs on in-memory stores (dev only).
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// UploadDir is the directory uploaded artifacts are written to.
	UploadDir string `mapstructure:"UPLOAD_DIR"`
	// MaxUploadBytes is the upload size ceiling in bytes; default 100 MiB.
	MaxUploadBytes int64 `mapstructure:"MAX_UPLOAD_BYTES"`
	// BcryptCost is the bcrypt cost factor (4-31); default 12.
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// SummarizerURL is the Document Summarizer endpoint; PDF processing fails without it.
	SummarizerURL string `mapstructure:"SUMMARIZER_URL"`
	// RecommenderURL is the Recommendation Engine endpoint; suggestions are empty without it.
	RecommenderURL string `mapstructure:"RECOMMENDER_URL"`
	// DevAutoLogin, when true, synthesizes a session for requests with no token
	// if at least one user exists. Must not be true when Env is production.
	DevAutoLogin bool `mapstructure:"DEV_AUTO_LOGIN"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`

	// Events (optional). When Kafka brokers are set, lifecycle events are emitted to Kafka.
	// EventsKafkaBrokers is a comma-separated list of broker addresses (e.g. "localhost:9092").
	EventsKafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// EventsKafkaTopic is the Kafka topic for lifecycle events (default skillswap-events).
	EventsKafkaTopic string `mapstructure:"EVENTS_KAFKA_TOPIC"`

	// Worker-only: Loki URL for the events worker to push logs (e.g. http://localhost:3100).
	LokiURL string `mapstructure:"LOKI_URL"`
	// KafkaGroupID is the consumer group ID for the events worker.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`

	// OTLPEndpoint enables OpenTelemetry export when set (e.g. http://localhost:4317).
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("SUMMARIZER_URL", "")
	v.SetDefault("RECOMMENDER_URL", "")
	v.SetDefault("DEV_AUTO_LOGIN", false)
	v.SetDefault("APP_ENV", "")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("EVENTS_KAFKA_TOPIC", "skillswap-events")
	v.SetDefault("KAFKA_GROUP_ID", "skillswap-events-worker")
	v.SetDefault("LOKI_URL", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}

	if cfg.DevAutoLogin && cfg.Env == "production" {
		return nil, errors.New("config: DEV_AUTO_LOGIN must not be true when APP_ENV=production")
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultMaxUploadBytes
	}

	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 12
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}

	return &cfg, nil
}

// EventsKafkaBrokersList splits EventsKafkaBrokers on commas, trimming whitespace and dropping empties.
func (c *Config) EventsKafkaBrokersList() []string {
	if strings.TrimSpace(c.EventsKafkaBrokers) == "" {
		return nil
	}
	parts := strings.Split(c.EventsKafkaBrokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
