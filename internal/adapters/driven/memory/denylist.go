package memory

import (
	"context"
	"sync"
	"time"

	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TokenDenylist = (*Denylist)(nil)

// Denylist records revoked token ids in process memory.
type Denylist struct {
	mu      sync.RWMutex
	revoked map[string]time.Time // jti -> expiry
}

// NewDenylist creates an in-memory Denylist
func NewDenylist() *Denylist {
	return &Denylist{revoked: make(map[string]time.Time)}
}

// Revoke marks a token id invalid until its natural expiry.
func (d *Denylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether a token id has been revoked. Expired entries
// are pruned opportunistically.
func (d *Denylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.RLock()
	expiry, ok := d.revoked[jti]
	d.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		d.mu.Lock()
		delete(d.revoked, jti)
		d.mu.Unlock()
		return false, nil
	}
	return true, nil
}
