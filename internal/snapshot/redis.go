package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	sharedredis "imperium-server/internal/shared/redis"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the ledger document under a single redis key.
type RedisStore struct {
	client *sharedredis.Client
	logger *slog.Logger
}

func NewRedisStore(client *sharedredis.Client, logger *slog.Logger) *RedisStore {
	logger.Debug("Initializing redis snapshot store")

	return &RedisStore{
		client: client,
		logger: logger,
	}
}

func (s *RedisStore) Save(ctx context.Context, data []byte) error {
	logger := s.logger.With("component", "snapshot_redis", "operation", "save", "bytes", len(data))
	logger.Debug("Saving snapshot")

	// No expiration: the snapshot lives until the next game or key bump.
	if err := s.client.Set(ctx, Key, data, 0).Err(); err != nil {
		logger.Error("Failed to save snapshot", "error", err)
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Debug("Snapshot saved")
	return nil
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	logger := s.logger.With("component", "snapshot_redis", "operation", "load")
	logger.Debug("Loading snapshot")

	data, err := s.client.Get(ctx, Key).Bytes()
	if errors.Is(err, redis.Nil) {
		logger.Debug("No snapshot stored yet")
		return nil, ErrNotFound{}
	}
	if err != nil {
		logger.Error("Failed to load snapshot", "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	logger.Debug("Snapshot loaded", "bytes", len(data))
	return data, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
