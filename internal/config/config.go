// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the internal (staff-facing) HTTP server listens on (e.g. :5000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// IngestAddr is the address the public submission HTTP server listens on (e.g. :4000).
	IngestAddr string `mapstructure:"INGEST_ADDR"`
	// DatabaseURL is the Postgres DSN for the ticket store.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// KafkaBrokers is a comma-separated list of Kafka broker addresses (e.g. "localhost:9092").
	KafkaBrokers string `mapstructure:"KAFKA_BROKERS"`
	// TicketsKafkaTopic is the Kafka topic that carries published tickets (default tickets-stream).
	TicketsKafkaTopic string `mapstructure:"TICKETS_KAFKA_TOPIC"`
	// KafkaGroupID is the consumer group ID for the ticket stream consumer.
	KafkaGroupID string `mapstructure:"KAFKA_GROUP_ID"`
	// JWTSecret is the HS256 signing secret for staff bearer tokens. Required by cmd/server.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTTTL is the token lifetime (e.g. "24h").
	JWTTTL string `mapstructure:"JWT_TTL"`
	// CityName is the configured municipal boundary (default bangalore).
	CityName string `mapstructure:"CITY_NAME"`
	// CityAliases is a comma-separated list of alias names matched against resolved
	// addresses. When empty, aliases are derived from CityName.
	CityAliases string `mapstructure:"CITY_ALIASES"`
	// GeocodeBaseURL is the reverse-geocoding service base URL.
	GeocodeBaseURL string `mapstructure:"GEOCODE_BASE_URL"`
	// GeocodeTimeout is the per-attempt timeout for the reverse-geocode call (e.g. "5s").
	GeocodeTimeout string `mapstructure:"GEOCODE_TIMEOUT"`
	// GeocodeUserAgent is the identifying client tag sent to the geocoding service.
	GeocodeUserAgent string `mapstructure:"GEOCODE_USER_AGENT"`
	// OTLPEndpoint enables OpenTelemetry export when set (e.g. http://localhost:4317).
	OTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	// OTLPInsecure forces a plaintext OTLP connection even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTEL_EXPORTER_OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":5000")
	v.SetDefault("INGEST_ADDR", ":4000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("TICKETS_KAFKA_TOPIC", "tickets-stream")
	v.SetDefault("KAFKA_GROUP_ID", "civic-ticket-consumer")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("CITY_NAME", "bangalore")
	v.SetDefault("CITY_ALIASES", "")
	v.SetDefault("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODE_TIMEOUT", "5s")
	v.SetDefault("GEOCODE_USER_AGENT", "CivicReportingSystem/1.0")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.IngestAddr == "" {
		return nil, errors.New("config: INGEST_ADDR must be set")
	}
	if cfg.CityName == "" {
		return nil, errors.New("config: CITY_NAME must be set")
	}

	return &cfg, nil
}

// JWTLifetime parses JWTTTL as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) JWTLifetime() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// GeocodeAttemptTimeout parses GeocodeTimeout as a time.Duration. Returns 5s if unset or invalid.
func (c *Config) GeocodeAttemptTimeout() time.Duration {
	d, err := time.ParseDuration(c.GeocodeTimeout)
	if err != nil || d <= 0 {
		return 5 * time.Second
	}
	return d
}

// KafkaBrokersList returns Kafka broker addresses from the comma-separated config.
func (c *Config) KafkaBrokersList() []string {
	return splitTrimmed(c.KafkaBrokers)
}

// CityAliasList returns the lowercase alias set matched against resolved addresses.
// When CITY_ALIASES is empty, the list is derived from CityName; "bangalore" keeps
// its alternate spelling "bengaluru".
func (c *Config) CityAliasList() []string {
	city := strings.ToLower(strings.TrimSpace(c.CityName))
	if c.CityAliases != "" {
		if aliases := splitTrimmed(strings.ToLower(c.CityAliases)); len(aliases) > 0 {
			return aliases
		}
	}
	if city == "bangalore" {
		return []string{"bangalore", "bengaluru"}
	}
	return []string{city}
}

func splitTrimmed(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
