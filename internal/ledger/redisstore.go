package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ticketnow:store:"

// RedisStore implements Store on Redis for box-office terminals that share
// one purchase history. Slots are plain string values; the Ledger's JSON
// encoding is opaque to the store, same as the file variant.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies the connection at startup so a misconfigured address fails
// fast instead of on the first checkout.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
