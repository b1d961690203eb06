package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"account_ledger/internal/config"
	"account_ledger/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in Redis so several server processes can share
// them. Each key expires together with its session, so DeleteExpired has
// nothing to do.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	const op = "session.NewRedisStore"
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Save(ctx context.Context, s models.Session) error {
	const op = "session.RedisStore.Save"
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		// already expired: make sure nothing stale is left behind
		return r.client.Del(ctx, r.key(s.ID)).Err()
	}
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := r.client.Set(ctx, r.key(s.ID), b, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (models.Session, bool, error) {
	const op = "session.RedisStore.Get"
	val, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("%s: %w", op, err)
	}
	var s models.Session
	if err := json.Unmarshal(val, &s); err != nil {
		return models.Session{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return s, true, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("session.RedisStore.Delete: %w", err)
	}
	return n > 0, nil
}

func (r *RedisStore) DeleteExpired(context.Context, time.Time) (int, error) {
	return 0, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
