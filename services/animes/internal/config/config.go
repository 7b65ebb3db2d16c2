package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/example/anime-registry/internal/platform/httpserver"
	"github.com/example/anime-registry/services/animes/internal/domain"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	CredentialsMemory   = "memory"
	CredentialsDatabase = "database"
)

type Config struct {
	// DBDriver selects the anime store: memory, postgres or sqlite.
	DBDriver    string
	DatabaseURL string
	SQLitePath  string
	AutoMigrate bool

	// CredentialsSource is memory (seed file or bootstrap users) or database
	// (the users table of the configured driver).
	CredentialsSource string
	CredentialsFile   string

	// JWTSecret enables POST /auth/token and Bearer authentication when set.
	JWTSecret string
	TokenTTL  time.Duration

	PageDefaultSize int
	PageMaxSize     int

	// NATSURL enables anime events when set.
	NATSURL           string
	NATSMaxReconnects int
	NATSReconnectWait time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
	// TrustedProxies may set X-Forwarded-For for rate limiting.
	TrustedProxies []netip.Prefix
}

// SetDefaults registers the service keys on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("db_driver", "")
	v.SetDefault("database_url", "")
	v.SetDefault("sqlite_path", "animes.db")
	v.SetDefault("auto_migrate", true)
	v.SetDefault("credentials_source", CredentialsMemory)
	v.SetDefault("credentials_file", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 15*time.Minute)
	v.SetDefault("page_default_size", domain.DefaultPageSize)
	v.SetDefault("page_max_size", domain.MaxPageSize)
	v.SetDefault("nats_url", "")
	v.SetDefault("nats_max_reconnects", 5)
	v.SetDefault("nats_reconnect_wait", 2*time.Second)
	v.SetDefault("rate_limit_rps", 0)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("rate_limit_trusted_proxies", "")
}

// Load reads the service configuration. production rejects the in-memory
// store and credential source.
func Load(v *viper.Viper, production bool) (Config, error) {
	SetDefaults(v)
	cfg := Config{
		DBDriver:          strings.ToLower(strings.TrimSpace(v.GetString("db_driver"))),
		DatabaseURL:       strings.TrimSpace(v.GetString("database_url")),
		SQLitePath:        strings.TrimSpace(v.GetString("sqlite_path")),
		AutoMigrate:       v.GetBool("auto_migrate"),
		CredentialsSource: strings.ToLower(strings.TrimSpace(v.GetString("credentials_source"))),
		CredentialsFile:   strings.TrimSpace(v.GetString("credentials_file")),
		JWTSecret:         strings.TrimSpace(v.GetString("jwt_secret")),
		TokenTTL:          v.GetDuration("token_ttl"),
		PageDefaultSize:   v.GetInt("page_default_size"),
		PageMaxSize:       v.GetInt("page_max_size"),
		NATSURL:           strings.TrimSpace(v.GetString("nats_url")),
		NATSMaxReconnects: v.GetInt("nats_max_reconnects"),
		NATSReconnectWait: v.GetDuration("nats_reconnect_wait"),
		RateLimitRPS:      v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:    v.GetInt("rate_limit_burst"),
	}

	proxies, err := httpserver.ParseProxies(v.GetString("rate_limit_trusted_proxies"))
	if err != nil {
		return Config{}, fmt.Errorf("RATE_LIMIT_TRUSTED_PROXIES: %w", err)
	}
	cfg.TrustedProxies = proxies

	if cfg.DBDriver == "" {
		cfg.DBDriver = DriverMemory
		if cfg.DatabaseURL != "" {
			cfg.DBDriver = DriverPostgres
		}
	}
	switch cfg.DBDriver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for DB_DRIVER=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.CredentialsSource {
	case CredentialsMemory:
	case CredentialsDatabase:
		if cfg.DBDriver == DriverMemory {
			return Config{}, errors.New("CREDENTIALS_SOURCE=database needs DB_DRIVER postgres or sqlite")
		}
	default:
		return Config{}, fmt.Errorf("unknown CREDENTIALS_SOURCE %q", cfg.CredentialsSource)
	}

	if production {
		if cfg.DBDriver == DriverMemory {
			return Config{}, errors.New("in-memory anime store is not allowed in production")
		}
		if cfg.CredentialsSource == CredentialsMemory {
			return Config{}, errors.New("in-memory credentials are not allowed in production")
		}
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 15 * time.Minute
	}
	if cfg.PageMaxSize <= 0 {
		cfg.PageMaxSize = domain.MaxPageSize
	}
	if cfg.PageDefaultSize <= 0 || cfg.PageDefaultSize > cfg.PageMaxSize {
		cfg.PageDefaultSize = min(domain.DefaultPageSize, cfg.PageMaxSize)
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 1
	}
	return cfg, nil
}
