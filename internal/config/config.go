// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures runtime configuration for the API service.
type Config struct {
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
	Service   ServiceConfig
	Orders    OrdersConfig
}

type HTTPConfig struct {
	Port          int
	MetricsPath   string
	ShutdownGrace int
}

type DatabaseConfig struct {
	URL            string
	AutoMigrate    bool
	MigrationsPath string
}

// RedisConfig configures the read cache. An empty Addr disables caching.
type RedisConfig struct {
	Addr string
}

type KafkaConfig struct {
	Brokers []string
}

type TelemetryConfig struct {
	LogLevel      string
	OTelEndpoint  string
	EnableTracing bool
	EnableMetrics bool
	SampleRate    float64
}

type ServiceConfig struct {
	Name        string
	Version     string
	Environment string
}

type OrdersConfig struct {
	MaxItemQuantity int
}

// Load reads configuration from environment variables, applying defaults
// for anything unset. It fails only on values that do not parse.
func Load() (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			MetricsPath: envString("API_METRICS_PATH", "/metrics"),
		},
		Database: DatabaseConfig{
			URL:            os.Getenv("DATABASE_URL"),
			AutoMigrate:    envBool("AUTO_MIGRATE", true),
			MigrationsPath: envString("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Telemetry: TelemetryConfig{
			LogLevel:      envString("LOG_LEVEL", "info"),
			OTelEndpoint:  os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			EnableTracing: envBool("OTEL_ENABLE_TRACING", true),
			EnableMetrics: envBool("OTEL_ENABLE_METRICS", true),
		},
		Service: ServiceConfig{
			Name:        envString("API_SERVICE_NAME", "commerce-core-api"),
			Version:     envString("SERVICE_VERSION", "0.1.0"),
			Environment: envString("ENVIRONMENT", "development"),
		},
	}

	if cfg.Database.URL == "" {
		cfg.Database.URL = databaseURLFromParts()
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}

	var err error
	if cfg.HTTP.Port, err = envInt("API_HTTP_PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.HTTP.ShutdownGrace, err = envInt("API_SHUTDOWN_GRACE_SECONDS", 15); err != nil {
		return nil, err
	}
	if cfg.Telemetry.SampleRate, err = envFloat("OTEL_SAMPLE_RATE", 1.0); err != nil {
		return nil, err
	}
	if cfg.Orders.MaxItemQuantity, err = envInt("ORDERS_MAX_ITEM_QUANTITY", 100); err != nil {
		return nil, err
	}

	return cfg, nil
}

// databaseURLFromParts assembles a pgx pool URL from the discrete DB_*
// variables when DATABASE_URL is not set directly.
func databaseURLFromParts() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%s&pool_min_conns=%s&pool_max_conn_lifetime=%s",
		envString("DB_USER", "postgres"),
		envString("DB_PASSWORD", "postgres"),
		envString("DB_HOST", "localhost"),
		envString("DB_PORT", "5432"),
		envString("DB_NAME", "commerce"),
		envString("DB_SSLMODE", "disable"),
		envString("DB_MAX_CONNS", "25"),
		envString("DB_MIN_CONNS", "5"),
		envString("DB_MAX_CONN_LIFETIME", "5m"),
	)
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		return value == "true"
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}
