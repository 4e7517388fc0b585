// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes the bot token, the
// config-store connection, logging, the ops listener, and observability.
// A .env file in the working directory is honored when present.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreDriverREST   = "rest"
	StoreDriverSQLite = "sqlite"
)

// StoreConfig defines the config-store backend.
type StoreConfig struct {
	Driver       string // STORE_DRIVER: rest|sqlite
	URL          string // DATABASE_SERVER_URL (rest)
	APIKey       string // API_KEY (rest)
	RoutingTable string // ROUTING_TABLE ("discord_server", legacy "discord_channels")
	SQLitePath   string // DB_PATH (sqlite)
}

// OpsConfig defines the internal ops HTTP listener.
type OpsConfig struct {
	Enabled           bool          // OPS_ENABLED
	Port              string        // PORT (just the number)
	ReadTimeout       time.Duration // READ_TIMEOUT
	ReadHeaderTimeout time.Duration // READ_HEADER_TIMEOUT
	WriteTimeout      time.Duration // WRITE_TIMEOUT
	IdleTimeout       time.Duration // IDLE_TIMEOUT
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Platform
	BotToken string // BOT_TOKEN, required

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	Store StoreConfig
	Ops   OpsConfig
	OTEL  OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from the environment (and an optional .env
// file), applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		BotToken: getenv("BOT_TOKEN", ""),

		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		Store: StoreConfig{
			Driver:       strings.ToLower(getenv("STORE_DRIVER", StoreDriverREST)),
			URL:          strings.TrimRight(getenv("DATABASE_SERVER_URL", ""), "/"),
			APIKey:       getenv("API_KEY", ""),
			RoutingTable: getenv("ROUTING_TABLE", "discord_server"),
			SQLitePath:   getenv("DB_PATH", "relay.db"),
		},

		Ops: OpsConfig{
			Enabled:           getbool("OPS_ENABLED", true),
			Port:              getenv("PORT", "8080"),
			ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
			ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
			WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
			IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		},

		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "confession-relay"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	// --- validation ---
	if cfg.BotToken == "" {
		return cfg, errors.New("BOT_TOKEN not found in environment")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	switch cfg.Store.Driver {
	case StoreDriverREST:
		if cfg.Store.URL == "" {
			return cfg, errors.New("DATABASE_SERVER_URL not found in environment")
		}
		if cfg.Store.APIKey == "" {
			return cfg, errors.New("API_KEY not found in environment")
		}
	case StoreDriverSQLite:
		if strings.TrimSpace(cfg.Store.SQLitePath) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	default:
		return cfg, errors.New("STORE_DRIVER must be rest or sqlite")
	}
	if strings.TrimSpace(cfg.Store.RoutingTable) == "" {
		return cfg, errors.New("ROUTING_TABLE must not be empty")
	}
	if cfg.Ops.Enabled {
		if strings.TrimSpace(cfg.Ops.Port) == "" {
			return cfg, errors.New("PORT must not be empty")
		}
		if cfg.Ops.ReadTimeout <= 0 || cfg.Ops.ReadHeaderTimeout <= 0 ||
			cfg.Ops.WriteTimeout <= 0 || cfg.Ops.IdleTimeout <= 0 {
			return cfg, errors.New("timeouts must be positive durations")
		}
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
