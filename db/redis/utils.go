package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bothellselect/select-client/storage"
	"github.com/redis/go-redis/v9"
)

// Store keeps client state in redis so dashboard sessions survive a restart.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore wraps client. Keys written with a positive ttl expire; the session
// manager still treats an expired token as logged out either way.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", storage.ErrNotFound
	}
	return v, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, s.ttl).Err()
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
