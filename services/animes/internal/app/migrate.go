package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/anime-registry/internal/platform/db"
	"github.com/example/anime-registry/services/animes/internal/config"
	"github.com/example/anime-registry/services/animes/internal/credentials"
	"github.com/example/anime-registry/services/animes/internal/store"
)

type userInserter interface {
	credentials.Store
	Insert(ctx context.Context, c credentials.Credential) error
}

// Migrate creates the schema of the configured SQL driver and, when seedFile
// is set, inserts its users that do not exist yet.
func Migrate(ctx context.Context, cfg config.Config, seedFile string, log *zap.Logger) error {
	var users userInserter
	switch cfg.DBDriver {
	case config.DriverPostgres:
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer pool.Close()
		if err := store.EnsurePostgresSchema(ctx, pool); err != nil {
			return err
		}
		users = credentials.NewPostgresStore(pool)
	case config.DriverSQLite:
		handle, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer handle.Close()
		if err := store.EnsureSQLiteSchema(ctx, handle); err != nil {
			return err
		}
		users = credentials.NewSQLiteStore(handle)
	default:
		return fmt.Errorf("nothing to migrate for DB_DRIVER %q", cfg.DBDriver)
	}
	log.Info("schema ensured", zap.String("driver", cfg.DBDriver))

	if seedFile == "" {
		return nil
	}
	seed, err := credentials.LoadSeedFile(seedFile)
	if err != nil {
		return err
	}
	return seedUsers(ctx, users, seed, log)
}

func seedUsers(ctx context.Context, users userInserter, seed []credentials.SeedUser, log *zap.Logger) error {
	for _, u := range seed {
		c, err := u.ToCredential(0)
		if err != nil {
			return err
		}
		_, err = users.Lookup(ctx, c.Username)
		switch {
		case err == nil:
			log.Info("user exists, skipping", zap.String("user", c.Username))
			continue
		case !errors.Is(err, credentials.ErrUnknownUser):
			return err
		}
		if err := users.Insert(ctx, c); err != nil {
			return fmt.Errorf("insert user %s: %w", c.Username, err)
		}
		log.Info("user seeded", zap.String("user", c.Username))
	}
	return nil
}
