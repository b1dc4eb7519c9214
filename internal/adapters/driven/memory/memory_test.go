package memory

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_FixedWindow(t *testing.T) {
	limiter := NewRateLimiter()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := limiter.Allow(ctx, "a", time.Minute, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("hit %d: expected allowed", i+1)
		}
	}
	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 2); ok {
		t.Error("expected third hit denied")
	}
	if ok, _ := limiter.Allow(ctx, "b", time.Minute, 2); !ok {
		t.Error("expected independent key allowed")
	}
}

func TestRateLimiter_WindowResets(t *testing.T) {
	limiter := NewRateLimiter()
	ctx := context.Background()

	current := time.Now()
	limiter.now = func() time.Time { return current }

	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 1); !ok {
		t.Fatal("expected first hit allowed")
	}
	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 1); ok {
		t.Fatal("expected second hit denied")
	}

	current = current.Add(2 * time.Minute)

	if ok, _ := limiter.Allow(ctx, "a", time.Minute, 1); !ok {
		t.Error("expected fresh window after expiry")
	}
}

func TestDenylist_RevokeAndExpiry(t *testing.T) {
	denylist := NewDenylist()
	ctx := context.Background()

	if revoked, _ := denylist.IsRevoked(ctx, "jti-1"); revoked {
		t.Error("expected unknown jti not revoked")
	}

	if err := denylist.Revoke(ctx, "jti-1", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked, _ := denylist.IsRevoked(ctx, "jti-1"); !revoked {
		t.Error("expected jti-1 revoked")
	}

	// A non-positive ttl means the token is already expired.
	if err := denylist.Revoke(ctx, "jti-2", -time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revoked, _ := denylist.IsRevoked(ctx, "jti-2"); revoked {
		t.Error("expected expired-token revocation to be a no-op")
	}
}

func TestDenylist_PrunesExpiredEntries(t *testing.T) {
	denylist := NewDenylist()
	ctx := context.Background()

	if err := denylist.Revoke(ctx, "jti-1", time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if revoked, _ := denylist.IsRevoked(ctx, "jti-1"); revoked {
		t.Error("expected entry expired")
	}
	denylist.mu.RLock()
	_, ok := denylist.revoked["jti-1"]
	denylist.mu.RUnlock()
	if ok {
		t.Error("expected expired entry pruned")
	}
}
