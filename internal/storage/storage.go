// Package storage opens the configured trending counter store.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/storage/bolt"
	"github.com/mmcdole/reel/internal/storage/memory"
	"github.com/mmcdole/reel/internal/storage/mongo"
	"github.com/mmcdole/reel/internal/storage/redis"
)

const connectTimeout = 10 * time.Second

// Open returns the TrendingStore selected by cfg.Backend.
func Open(ctx context.Context, cfg *config.TrendingConfig, logger *slog.Logger) (domain.TrendingStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("trending config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch cfg.Backend {
	case config.BackendBolt:
		s, err := bolt.Open(cfg.Path)
		if err != nil {
			return nil, err
		}
		logger.Info("trending store opened", "backend", cfg.Backend, "path", cfg.Path)
		return s, nil

	case config.BackendMongo:
		s, err := mongo.Open(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		logger.Info("trending store opened", "backend", cfg.Backend, "database", cfg.MongoDatabase)
		return s, nil

	case config.BackendRedis:
		s, err := redis.Open(ctx, cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		logger.Info("trending store opened", "backend", cfg.Backend, "prefix", cfg.RedisPrefix)
		return s, nil

	case config.BackendMemory:
		logger.Info("trending store opened", "backend", cfg.Backend)
		return memory.NewStore(), nil

	default:
		return nil, fmt.Errorf("unknown trending backend: %s", cfg.Backend)
	}
}
