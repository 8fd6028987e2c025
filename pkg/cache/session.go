package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel-booking/pkg/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

// SessionEntry is what the auth middleware needs to authenticate a request
// without touching Postgres.
type SessionEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	Role      string    `json:"role"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionCache stores session entries keyed by bearer token.
// Get returns nil, nil on a miss.
type SessionCache interface {
	Get(ctx context.Context, token string) (*SessionEntry, error)
	Set(ctx context.Context, token string, entry *SessionEntry) error
	Delete(ctx context.Context, tokens ...string) error
}

// NewRedisClient connects and pings with a short timeout.
func NewRedisClient(cfg utils.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", cfg.Addr, err)
	}

	return client, nil
}

type redisSessionCache struct {
	client *redis.Client
	log    *zap.Logger
}

func NewRedisSessionCache(client *redis.Client, log *zap.Logger) SessionCache {
	return &redisSessionCache{
		client: client,
		log:    log.With(zap.String("cache", "session")),
	}
}

func (c *redisSessionCache) Get(ctx context.Context, token string) (*SessionEntry, error) {
	raw, err := c.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached session: %w", err)
	}

	var entry SessionEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// A corrupt entry is treated as a miss and dropped.
		_ = c.client.Del(ctx, sessionKeyPrefix+token).Err()
		return nil, nil
	}

	if !entry.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return &entry, nil
}

// Set expires the key together with the session.
func (c *redisSessionCache) Set(ctx context.Context, token string, entry *SessionEntry) error {
	ttl := time.Until(entry.ExpiresAt)
	if ttl <= 0 {
		return nil
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode session entry: %w", err)
	}

	if err := c.client.Set(ctx, sessionKeyPrefix+token, raw, ttl).Err(); err != nil {
		return fmt.Errorf("cache session: %w", err)
	}
	return nil
}

func (c *redisSessionCache) Delete(ctx context.Context, tokens ...string) error {
	if len(tokens) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tokens))
	for _, t := range tokens {
		keys = append(keys, sessionKeyPrefix+t)
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("evict sessions: %w", err)
	}
	return nil
}

// noopSessionCache always misses. Used when REDIS_ADDR is empty.
type noopSessionCache struct{}

func NewNoopSessionCache() SessionCache { return noopSessionCache{} }

func (noopSessionCache) Get(context.Context, string) (*SessionEntry, error) { return nil, nil }
func (noopSessionCache) Set(context.Context, string, *SessionEntry) error   { return nil }
func (noopSessionCache) Delete(context.Context, ...string) error            { return nil }
