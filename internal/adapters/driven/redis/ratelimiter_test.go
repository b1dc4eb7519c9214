package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis, func()) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	return client, mr, func() {
		client.Close()
		mr.Close()
	}
}

func TestRateLimiter_AllowWithinBudget(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := limiter.Allow(ctx, "1.2.3.4:/api/v1/rag/search", time.Minute, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("hit %d: expected allowed", i+1)
		}
	}

	ok, err := limiter.Allow(ctx, "1.2.3.4:/api/v1/rag/search", time.Minute, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected hit over budget to be denied")
	}
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	client, _, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewRateLimiter(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if ok, _ := limiter.Allow(ctx, "a", time.Minute, 2); !ok {
			t.Fatal("expected key a within budget")
		}
	}
	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 2); ok {
		t.Error("expected key a over budget")
	}
	if ok, _ := limiter.Allow(ctx, "b", time.Minute, 2); !ok {
		t.Error("expected fresh key b allowed")
	}
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	client, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	limiter := NewRateLimiter(client)
	ctx := context.Background()

	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 1); !ok {
		t.Fatal("expected first hit allowed")
	}
	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 1); ok {
		t.Fatal("expected second hit denied")
	}

	mr.FastForward(2 * time.Minute)

	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 1); !ok {
		t.Error("expected fresh window after expiry")
	}
}
