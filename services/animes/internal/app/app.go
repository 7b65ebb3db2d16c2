// Package app assembles the anime service from its configuration.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/auth"
	"github.com/example/anime-registry/internal/platform/db"
	"github.com/example/anime-registry/internal/platform/events"
	"github.com/example/anime-registry/internal/platform/metrics"
	"github.com/example/anime-registry/internal/platform/natsconn"
	"github.com/example/anime-registry/services/animes/internal/config"
	"github.com/example/anime-registry/services/animes/internal/credentials"
	"github.com/example/anime-registry/services/animes/internal/service"
	"github.com/example/anime-registry/services/animes/internal/store"
)

const (
	eventPrefix = "animes"
	eventStream = "ANIMES"
)

type App struct {
	Config      config.Config
	Log         *zap.Logger
	Store       store.AnimeStore
	Credentials credentials.Store
	Service     *service.AnimeService
	Events      *events.Publisher
	Tokens      *auth.TokenService
	Metrics     *metrics.Metrics

	pool   *pgxpool.Pool
	sqlite *sql.DB
	nc     *nats.Conn
}

// New opens the configured backends. Close releases them.
func New(ctx context.Context, name string, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log, Metrics: metrics.New(metricsNamespace(name))}
	if err := a.openStore(ctx); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openCredentials(); err != nil {
		a.Close()
		return nil, err
	}
	if err := a.openEvents(name); err != nil {
		a.Close()
		return nil, err
	}

	if a.Events != nil {
		a.Service = service.New(a.Store, a.Events)
	} else {
		a.Service = service.New(a.Store, nil)
	}
	if cfg.JWTSecret != "" {
		a.Tokens = &auth.TokenService{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}
	}
	return a, nil
}

func (a *App) openStore(ctx context.Context) error {
	switch a.Config.DBDriver {
	case config.DriverMemory:
		a.Log.Warn("using in-memory anime store; data is lost on restart")
		a.Store = store.NewInMemoryAnimeStore()
		return nil
	case config.DriverPostgres:
		pool, err := db.Open(ctx, a.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		a.pool = pool
		if a.Config.AutoMigrate {
			if err := store.EnsurePostgresSchema(ctx, pool); err != nil {
				return err
			}
		}
		a.Store = store.NewPostgresAnimeStore(pool)
		return nil
	case config.DriverSQLite:
		handle, err := db.OpenSQLite(ctx, a.Config.SQLitePath)
		if err != nil {
			return err
		}
		a.sqlite = handle
		if a.Config.AutoMigrate {
			if err := store.EnsureSQLiteSchema(ctx, handle); err != nil {
				return err
			}
		}
		a.Store = store.NewSQLiteAnimeStore(handle)
		return nil
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", a.Config.DBDriver)
	}
}

func (a *App) openCredentials() error {
	switch a.Config.CredentialsSource {
	case config.CredentialsMemory:
		seed := credentials.DefaultSeed()
		if a.Config.CredentialsFile != "" {
			var err error
			if seed, err = credentials.LoadSeedFile(a.Config.CredentialsFile); err != nil {
				return err
			}
		} else {
			a.Log.Warn("using bootstrap credentials; set CREDENTIALS_FILE or CREDENTIALS_SOURCE=database")
		}
		s, err := credentials.NewSeededStore(seed, 0)
		if err != nil {
			return err
		}
		a.Credentials = s
		return nil
	case config.CredentialsDatabase:
		switch {
		case a.pool != nil:
			a.Credentials = credentials.NewPostgresStore(a.pool)
		case a.sqlite != nil:
			a.Credentials = credentials.NewSQLiteStore(a.sqlite)
		default:
			return errors.New("database credentials need a SQL anime store")
		}
		return nil
	default:
		return fmt.Errorf("unknown CREDENTIALS_SOURCE %q", a.Config.CredentialsSource)
	}
}

func (a *App) openEvents(name string) error {
	if a.Config.NATSURL == "" {
		return nil
	}
	nc, js, err := natsconn.ConnectJetStream(natsconn.Options{
		URL:           a.Config.NATSURL,
		Name:          name,
		MaxReconnects: a.Config.NATSMaxReconnects,
		ReconnectWait: a.Config.NATSReconnectWait,
		Logger:        a.Log,
	})
	if err != nil {
		return err
	}
	a.nc = nc
	pub := events.New(js, eventPrefix, a.Log)
	if err := pub.EnsureStream(eventStream); err != nil {
		return fmt.Errorf("ensure stream %s: %w", eventStream, err)
	}
	a.Events = pub
	return nil
}

func metricsNamespace(name string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(name)
}

// Authenticator verifies Basic credentials against the configured source.
func (a *App) Authenticator() auth.Authenticator {
	return credentials.NewAuthenticator(a.Credentials, a.Log)
}

func (a *App) Close() {
	if a.nc != nil {
		_ = a.nc.Drain()
	}
	if a.pool != nil {
		a.pool.Close()
	}
	if a.sqlite != nil {
		_ = a.sqlite.Close()
	}
}
