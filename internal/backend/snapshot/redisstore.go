package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// RedisStore keeps the snapshot under a single key without expiry
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to addr, which is either host:port or a redis:// URL
func NewRedisStore(addr, key string) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis connection string cannot be empty")
	}
	if key == "" {
		return nil, fmt.Errorf("snapshot path cannot be empty")
	}

	options := &redis.Options{Addr: addr}
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		options = parsed
	}

	client := redis.NewClient(options)
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", options.Addr, err)
	}

	return &RedisStore{client: client, key: key}, nil
}

func (s *RedisStore) Save(ctx context.Context, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return 0, fmt.Errorf("failed to store snapshot under key %s: %w", s.key, err)
	}
	return int64(len(data)), nil
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot under key %s: %w", s.key, err)
	}
	return data, nil
}

func (s *RedisStore) Location() string {
	return fmt.Sprintf("redis:%s#%s", s.client.Options().Addr, s.key)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
