package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage/inmemory"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage/postgres"
	"github.com/MyNameIsWhaaat/commentboard/internal/board/storage/redis"
	"github.com/MyNameIsWhaaat/commentboard/internal/config"
)

// openRepository returns the configured repository and a func releasing
// its connections.
func openRepository(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (storage.Repository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.New(db)
		if err := repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info().Str("driver", cfg.Driver).Msg("storage ready")
		return repo, func() { _ = db.Close() }, nil

	case config.DriverRedis:
		client, err := redis.Open(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info().Str("driver", cfg.Driver).Str("addr", cfg.RedisAddr).Msg("storage ready")
		return redis.New(client), func() { _ = client.Close() }, nil

	case config.DriverMemory:
		logger.Info().Str("driver", cfg.Driver).Msg("storage ready, board lives until exit")
		return inmemory.New(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
