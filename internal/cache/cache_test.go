// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"artboard/internal/models"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, renderKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	client, err := ConnectValkey(context.Background(), envOr("VALKEY_HOST", "localhost"), envOr("VALKEY_PORT", "6379"), os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	client.Close()
}

func TestConnectValkeyUnreachable(t *testing.T) {
	if _, err := ConnectValkey(context.Background(), "127.0.0.1", "1", ""); err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}

func TestRenderCacheSetAndGet(t *testing.T) {
	rc := NewRenderCache(testValkeyClient(t), time.Minute)
	ctx := context.Background()

	if _, ok := rc.Get(ctx, "missing"); ok {
		t.Error("expected miss")
	}

	rc.Set(ctx, "k1", []byte("png-bytes"))
	got, ok := rc.Get(ctx, "k1")
	if !ok || string(got) != "png-bytes" {
		t.Errorf("Get = %q, %v", got, ok)
	}

	n, err := rc.InvalidateAll(ctx)
	if err != nil {
		t.Fatalf("InvalidateAll: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	if _, ok := rc.Get(ctx, "k1"); ok {
		t.Error("entry survived InvalidateAll")
	}
}

func TestRenderCacheTTL(t *testing.T) {
	rc := NewRenderCache(testValkeyClient(t), time.Second)
	ctx := context.Background()
	rc.Set(ctx, "short", []byte("x"))
	ttl := rc.client.TTL(ctx, renderKeyPrefix+"short").Val()
	if ttl <= 0 || ttl > time.Second {
		t.Errorf("TTL = %v", ttl)
	}
}

func TestNewRenderCacheDefaultTTL(t *testing.T) {
	if rc := NewRenderCache(nil, 0); rc.ttl != DefaultRenderTTL {
		t.Errorf("ttl = %v, want %v", rc.ttl, DefaultRenderTTL)
	}
}

func TestRenderKey(t *testing.T) {
	base := models.ComponentContent{HTML: "<p>a</p>", CSS: "p{}", JS: "", Framework: "vanilla", Width: 300, Height: 200}
	key := RenderKey(&base)
	if len(key) != 64 {
		t.Errorf("key length = %d", len(key))
	}
	if RenderKey(&base) != key {
		t.Error("key is not deterministic")
	}

	variants := []models.ComponentContent{base, base, base, base}
	variants[0].Width = 301
	variants[1].JS = "x()"
	variants[2].HTML, variants[2].CSS = "<p>a</p>p", "{}"
	variants[3].Description = "ignored"
	for i, v := range variants[:3] {
		if RenderKey(&v) == key {
			t.Errorf("variant %d collides with base", i)
		}
	}
	if RenderKey(&variants[3]) != key {
		t.Error("description should not affect the key")
	}
}
