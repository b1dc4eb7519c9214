// Package memory provides in-process adapters used when Redis is not
// configured: single-instance deployments get the same interfaces without
// the extra dependency.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/visit-aqmola/aqmola-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RateLimiter = (*RateLimiter)(nil)

type window struct {
	start time.Time
	count int
}

// RateLimiter implements a fixed-window limiter in process memory.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

// NewRateLimiter creates an in-memory RateLimiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records a hit for key and reports whether it fits the window budget.
func (l *RateLimiter) Allow(_ context.Context, key string, windowDur time.Duration, max int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) > windowDur {
		w = &window{start: now}
		l.windows[key] = w
	}
	w.count++
	return w.count <= max, nil
}
