package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store on a Redis backend. Entries carry their own
// creation and expiration timestamps in a JSON envelope; the Redis-side TTL
// is a safety net that keeps abandoned keys from accumulating.
type Redis struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration
}

// NewRedis connects to Redis at addr and verifies the connection. Entries
// written through Set expire after ttl.
func NewRedis(addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{
		client: client,
		ctx:    ctx,
		ttl:    ttl,
	}, nil
}

func (c *Redis) Get(key string) (*Entry, error) {
	val, err := c.client.Get(c.ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		// corrupt entry, drop it and treat as a miss
		c.client.Del(c.ctx, key)
		return nil, nil
	}

	return &entry, nil
}

func (c *Redis) Set(key string, payload []byte) error {
	now := time.Now()
	entry := Entry{
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry for key %s: %w", key, err)
	}

	if err := c.client.Set(c.ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	return nil
}

func (c *Redis) ClearAll(prefix string) error {
	iter := c.client.Scan(c.ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(c.ctx) {
		if err := c.client.Del(c.ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys with prefix %s: %w", prefix, err)
	}
	return nil
}

// Close closes the Redis connection
func (c *Redis) Close() error {
	return c.client.Close()
}
