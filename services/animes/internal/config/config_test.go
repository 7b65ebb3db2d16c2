package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
)

var serviceKeys = []string{
	"DB_DRIVER", "DATABASE_URL", "SQLITE_PATH", "AUTO_MIGRATE", "CREDENTIALS_SOURCE", "CREDENTIALS_FILE",
	"JWT_SECRET", "TOKEN_TTL", "PAGE_DEFAULT_SIZE", "PAGE_MAX_SIZE", "NATS_URL", "NATS_MAX_RECONNECTS", "NATS_RECONNECT_WAIT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_TRUSTED_PROXIES",
}

func newViper(t *testing.T, env map[string]string) *viper.Viper {
	t.Helper()
	for _, k := range serviceKeys {
		t.Setenv(k, "")
	}
	for k, val := range env {
		t.Setenv(k, val)
	}
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t, nil), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverMemory || cfg.CredentialsSource != CredentialsMemory {
		t.Fatalf("expected memory defaults, got %+v", cfg)
	}
	if cfg.TokenTTL != 15*time.Minute || cfg.PageDefaultSize != 20 || cfg.PageMaxSize != 100 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if !cfg.AutoMigrate || cfg.SQLitePath != "animes.db" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoad_DatabaseURLImpliesPostgres(t *testing.T) {
	cfg, err := Load(newViper(t, map[string]string{"DATABASE_URL": "postgres://localhost/animes"}), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Fatalf("expected postgres, got %q", cfg.DBDriver)
	}
}

func TestLoad_Rejections(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":        {"DB_DRIVER": "mongo"},
		"postgres without url":  {"DB_DRIVER": "postgres"},
		"database creds memory": {"CREDENTIALS_SOURCE": "database"},
		"unknown creds source":  {"CREDENTIALS_SOURCE": "ldap"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(newViper(t, env), false); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoad_ProductionRefusesMemory(t *testing.T) {
	if _, err := Load(newViper(t, nil), true); err == nil {
		t.Fatal("expected production to refuse the memory store")
	}
	if _, err := Load(newViper(t, map[string]string{"DB_DRIVER": "sqlite"}), true); err == nil {
		t.Fatal("expected production to refuse memory credentials")
	}
	cfg, err := Load(newViper(t, map[string]string{"DB_DRIVER": "sqlite", "CREDENTIALS_SOURCE": "database"}), true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Fatalf("expected sqlite, got %q", cfg.DBDriver)
	}
}

func TestLoad_PageSizeBounds(t *testing.T) {
	cfg, err := Load(newViper(t, map[string]string{"PAGE_DEFAULT_SIZE": "500", "PAGE_MAX_SIZE": "50"}), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PageMaxSize != 50 || cfg.PageDefaultSize != 20 {
		t.Fatalf("expected default clamped under max, got %+v", cfg)
	}
}

func TestLoad_TrustedProxies(t *testing.T) {
	cfg, err := Load(newViper(t, map[string]string{"RATE_LIMIT_TRUSTED_PROXIES": "10.0.0.0/8, 127.0.0.1"}), false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[0].String() != "10.0.0.0/8" {
		t.Fatalf("unexpected proxies %v", cfg.TrustedProxies)
	}

	if _, err := Load(newViper(t, map[string]string{"RATE_LIMIT_TRUSTED_PROXIES": "proxy.local"}), false); err == nil {
		t.Fatal("expected error for invalid proxy entry")
	}
}
