package cache

import (
	"context"
	"fmt"
	"time"

	"agenda-api/core/config"
	"agenda-api/core/constants"
	"agenda-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache backs the short-lived auth state: revoked tokens, login attempt
// counters and pending OAuth states. Durable data lives in Postgres only.
type Cache interface {
	AddToTokenBlacklist(ctx context.Context, token string) error
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
	IncrementLoginAttempt(ctx context.Context, key string) error
	IsLoginBlocked(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
	SetOAuthState(ctx context.Context, state, provider string) error
	ConsumeOAuthState(ctx context.Context, state string) (string, error)
}

type redisCache struct {
	client *redis.Client
}

func NewCache(cfg config.RedisConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

func blacklistKey(token string) string {
	return "token_blacklist:" + token
}

func (c *redisCache) AddToTokenBlacklist(ctx context.Context, token string) error {
	return c.client.Set(ctx, blacklistKey(token), "1", constants.RefreshTokenDuration).Err()
}

func (c *redisCache) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	n, err := c.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (c *redisCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return c.client.Expire(ctx, key, constants.BlockDuration).Err()
	}
	return nil
}

func (c *redisCache) IsLoginBlocked(ctx context.Context, key string) (int64, error) {
	count, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func oauthStateKey(state string) string {
	return "oauth_state:" + state
}

func (c *redisCache) SetOAuthState(ctx context.Context, state, provider string) error {
	return c.client.Set(ctx, oauthStateKey(state), provider, constants.OAuthStateDuration).Err()
}

// ConsumeOAuthState returns the provider a state was issued for and
// deletes it, so each state is usable exactly once.
func (c *redisCache) ConsumeOAuthState(ctx context.Context, state string) (string, error) {
	provider, err := c.client.GetDel(ctx, oauthStateKey(state)).Result()
	if err == redis.Nil {
		return "", fmt.Errorf("oauth state not found or expired")
	}
	return provider, err
}
