package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Integration tests — skipped unless REDIS_URL is set.
func TestSupermarketCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck

	ctx := context.Background()
	c := NewSupermarketCache(rc, time.Minute)

	t.Run("SetAndGet", func(t *testing.T) {
		userID := uuid.New()
		names := []string{"Aldi", "Tesco"}

		if err := c.Set(ctx, userID, names); err != nil {
			t.Fatalf("Set failed: %v", err)
		}

		got, err := c.Get(ctx, userID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got) != 2 || got[0] != "Aldi" || got[1] != "Tesco" {
			t.Fatalf("got %v, want %v", got, names)
		}
	})

	t.Run("Get_Miss", func(t *testing.T) {
		_, err := c.Get(ctx, uuid.New())
		if !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil for a missing key, got %v", err)
		}
	})

	t.Run("Invalidate", func(t *testing.T) {
		userID := uuid.New()
		if err := c.Set(ctx, userID, []string{"Lidl"}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if err := c.Invalidate(ctx, userID); err != nil {
			t.Fatalf("Invalidate failed: %v", err)
		}
		if _, err := c.Get(ctx, userID); !errors.Is(err, redis.Nil) {
			t.Fatalf("expected redis.Nil after invalidation, got %v", err)
		}
	})

	t.Run("Invalidate_MissingKey", func(t *testing.T) {
		if err := c.Invalidate(ctx, uuid.New()); err != nil {
			t.Fatalf("invalidating a missing key must not error: %v", err)
		}
	})

	t.Run("KeyScopedPerUser", func(t *testing.T) {
		alice, bob := uuid.New(), uuid.New()
		if err := c.Set(ctx, alice, []string{"Tesco"}); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if _, err := c.Get(ctx, bob); !errors.Is(err, redis.Nil) {
			t.Fatal("one user's cache entry must not be visible to another")
		}
	})
}
