package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/honeycarbs/occupation-insights/internal/domain"
)

// RedisStore keeps slots in Redis so several server replicas share them
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds connection settings for the Redis store
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to Redis and verifies it answers PING
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("handoff: ping redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, session string, report domain.JobInsightsReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("handoff: marshal report: %w", err)
	}

	if err := s.client.Set(ctx, Key(session), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("handoff: redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, session string) (domain.JobInsightsReport, error) {
	data, err := s.client.Get(ctx, Key(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.JobInsightsReport{}, ErrNotFound
	}
	if err != nil {
		return domain.JobInsightsReport{}, fmt.Errorf("handoff: redis get: %w", err)
	}

	var report domain.JobInsightsReport
	if err := json.Unmarshal(data, &report); err != nil {
		return domain.JobInsightsReport{}, fmt.Errorf("handoff: unmarshal report: %w", err)
	}
	return report, nil
}

// Close releases the Redis connection pool
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
