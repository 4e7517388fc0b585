package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired provides the minimum viable environment for the default
// (rest) driver.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("DATABASE_SERVER_URL", "https://store.example.com")
	t.Setenv("API_KEY", "key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.LogPretty {
		t.Errorf("logging defaults = %q/%v", cfg.LogLevel, cfg.LogPretty)
	}
	if cfg.Store.Driver != StoreDriverREST {
		t.Errorf("store driver = %q; want rest", cfg.Store.Driver)
	}
	if cfg.Store.RoutingTable != "discord_server" {
		t.Errorf("routing table = %q", cfg.Store.RoutingTable)
	}
	if !cfg.Ops.Enabled || cfg.Ops.Port != "8080" {
		t.Errorf("ops defaults = %+v", cfg.Ops)
	}
	if cfg.Ops.ReadTimeout != 15*time.Second {
		t.Errorf("read timeout = %v", cfg.Ops.ReadTimeout)
	}
	if cfg.OTEL.Enabled {
		t.Error("OTEL enabled by default")
	}
}

func TestLoad_RequiredValues(t *testing.T) {
	cases := []struct {
		name  string
		unset string
		want  string
	}{
		{"bot token", "BOT_TOKEN", "BOT_TOKEN"},
		{"store url", "DATABASE_SERVER_URL", "DATABASE_SERVER_URL"},
		{"api key", "API_KEY", "API_KEY"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.unset, "")
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load = %v; want error naming %s", err, tc.want)
			}
		})
	}
}

func TestLoad_SQLiteDriverRelaxesStoreVars(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DATABASE_SERVER_URL", "")
	t.Setenv("API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != StoreDriverSQLite || cfg.Store.SQLitePath != "relay.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	setRequired(t)
	t.Setenv("STORE_DRIVER", "cassandra")
	if _, err := Load(); err == nil {
		t.Error("Load accepted an unknown store driver")
	}
}

func TestLoad_Normalization(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("DATABASE_SERVER_URL", "https://store.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want warn", cfg.LogLevel)
	}
	if strings.HasSuffix(cfg.Store.URL, "/") {
		t.Errorf("store URL keeps trailing slash: %q", cfg.Store.URL)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "loud")
	if _, err := Load(); err == nil {
		t.Error("Load accepted an invalid log level")
	}
}

func TestLoad_LegacyRoutingTable(t *testing.T) {
	setRequired(t)
	t.Setenv("ROUTING_TABLE", "discord_channels")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.RoutingTable != "discord_channels" {
		t.Errorf("routing table = %q", cfg.Store.RoutingTable)
	}
}
