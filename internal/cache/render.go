// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"artboard/internal/models"
)

const (
	renderKeyPrefix = "render:"

	// DefaultRenderTTL is how long a rasterized component stays cached.
	DefaultRenderTTL = time.Hour
)

// RenderCache stores rasterized component bundles in Valkey, keyed by a
// hash of everything that affects the pixels.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRenderCache creates a render cache backed by the given Valkey client.
func NewRenderCache(client *redis.Client, ttl time.Duration) *RenderCache {
	if ttl <= 0 {
		ttl = DefaultRenderTTL
	}
	return &RenderCache{client: client, ttl: ttl}
}

// Get returns the cached entry for key. Errors count as misses.
func (rc *RenderCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, renderKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("render cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("render cache hit", "key", key)
	return val, true
}

// Set stores an entry with the configured TTL. Failures are logged only.
func (rc *RenderCache) Set(ctx context.Context, key string, data []byte) {
	if err := rc.client.Set(ctx, renderKeyPrefix+key, data, rc.ttl).Err(); err != nil {
		slog.Warn("render cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached render by scanning for the prefix.
func (rc *RenderCache) InvalidateAll(ctx context.Context) (int, error) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := rc.client.Scan(ctx, cursor, renderKeyPrefix+"*", 100).Result()
		if err != nil {
			return deleted, fmt.Errorf("render cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				return deleted, fmt.Errorf("render cache delete: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("render cache cleared", "deleted", deleted)
	}
	return deleted, nil
}

// RenderKey derives the cache key for a component bundle. Fields are
// length-prefixed so that moving text between fields changes the key.
func RenderKey(c *models.ComponentContent) string {
	h := sha256.New()
	for _, part := range []string{c.HTML, c.CSS, c.JS, c.Framework} {
		fmt.Fprintf(h, "%d:%s|", len(part), part)
	}
	fmt.Fprintf(h, "%dx%d", c.Width, c.Height)
	return hex.EncodeToString(h.Sum(nil))
}
