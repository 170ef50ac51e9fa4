package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vietddude/stacksyield/internal/core/domain"
)

// Client publishes bridge transaction updates to a Redis channel.
type Client struct {
	rdb     *redis.Client
	channel string
	log     *slog.Logger
}

// Config holds Redis connection configuration.
type Config struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	Channel  string `yaml:"channel"`
}

// NewClient creates a new Redis client.
func NewClient(cfg Config) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}

	rdb := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newClient(rdb, cfg.Channel), nil
}

func newClient(rdb *redis.Client, channel string) *Client {
	return &Client{rdb: rdb, channel: channel, log: slog.Default().With("component", "redis")}
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Channel returns the channel updates are published on.
func (c *Client) Channel() string {
	return c.channel
}

// Publish sends a transaction snapshot to the channel.
func (c *Client) Publish(ctx context.Context, tx domain.BridgeTransaction) error {
	payload, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("marshal transaction: %w", err)
	}
	if err := c.rdb.Publish(ctx, c.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}
	return nil
}

// OnTransaction implements bridge.Listener. Publish failures are logged.
func (c *Client) OnTransaction(tx domain.BridgeTransaction) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.Publish(ctx, tx); err != nil {
		c.log.Warn("Failed to publish bridge update", "id", tx.ID, "error", err)
	}
}
