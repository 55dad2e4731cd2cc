// Package guard provides a short-TTL serialization lock for transport
// operations. Rapid repeated UI interactions (double-tap on play/pause, a
// drag-release firing twice) must not issue overlapping start/stop/seek
// calls against the same engine instance; while the lock is held, repeat
// acquisitions fail and the operation is dropped, not queued.
package guard

import (
	"sync"
	"time"
)

// DefaultTTL is the spacing enforced between guarded operations.
const DefaultTTL = 300 * time.Millisecond

// Lock is a debounce lock that releases itself after its TTL expires.
type Lock struct {
	mu    sync.Mutex
	ttl   time.Duration
	until time.Time
	now   func() time.Time
}

// New creates a lock with the given TTL. A non-positive TTL falls back
// to DefaultTTL.
func New(ttl time.Duration) *Lock {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Lock{ttl: ttl, now: time.Now}
}

// TryAcquire takes the lock if it is free or expired. It returns false
// while a previous acquisition is still within its TTL window.
func (l *Lock) TryAcquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Before(l.until) {
		return false
	}
	l.until = now.Add(l.ttl)
	return true
}

// Release clears the lock before its TTL expires. Used on teardown so a
// replacement session does not inherit a held guard.
func (l *Lock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.until = time.Time{}
}

// TTL returns the configured window.
func (l *Lock) TTL() time.Duration {
	return l.ttl
}
