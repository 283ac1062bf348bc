package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/giorgiovilardo/easyorario/config"
)

// Client wraps the Redis connection.
// Used for the JWT blacklist and for each professor's LLM endpoint settings.
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient connects to Redis and runs a ping health check.
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	logger.Info("redis connected", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── token blacklist ──

const blacklistPrefix = "token:blacklist:"

// BlacklistToken stores a JWT ID with a TTL equal to the token's remaining lifetime.
func (c *Client) BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to blacklist
	}
	return c.rdb.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

// IsBlacklisted reports whether a JWT ID has been blacklisted.
func (c *Client) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ── per-professor LLM endpoint settings ──

const llmEndpointPrefix = "llm:endpoint:"

// LLMEndpoint is the professor-supplied LLM endpoint configuration.
type LLMEndpoint struct {
	BaseURL string `json:"base_url"`
	APIKey  string `json:"api_key"`
	ModelID string `json:"model_id"`
}

// SaveLLMEndpoint stores the LLM endpoint configuration for a user.
func (c *Client) SaveLLMEndpoint(ctx context.Context, userID string, ep LLMEndpoint) error {
	payload, err := json.Marshal(ep)
	if err != nil {
		return fmt.Errorf("encoding llm endpoint: %w", err)
	}
	return c.rdb.Set(ctx, llmEndpointPrefix+userID, payload, 0).Err()
}

// GetLLMEndpoint returns the stored configuration, or nil when the user has
// not configured an endpoint yet.
func (c *Client) GetLLMEndpoint(ctx context.Context, userID string) (*LLMEndpoint, error) {
	payload, err := c.rdb.Get(ctx, llmEndpointPrefix+userID).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ep LLMEndpoint
	if err := json.Unmarshal(payload, &ep); err != nil {
		return nil, fmt.Errorf("decoding llm endpoint: %w", err)
	}
	return &ep, nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
