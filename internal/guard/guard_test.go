package guard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLock(ttl time.Duration) (*Lock, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	l := New(ttl)
	l.now = clock.now
	return l, clock
}

func TestTryAcquire_DropsRepeatsWithinTTL(t *testing.T) {
	l, _ := newTestLock(300 * time.Millisecond)

	assert.True(t, l.TryAcquire(), "first acquire should succeed")
	assert.False(t, l.TryAcquire(), "second acquire within TTL should be dropped")
	assert.False(t, l.TryAcquire(), "third acquire within TTL should be dropped")
}

func TestTryAcquire_ExpiresAfterTTL(t *testing.T) {
	l, clock := newTestLock(300 * time.Millisecond)

	assert.True(t, l.TryAcquire())

	clock.advance(299 * time.Millisecond)
	assert.False(t, l.TryAcquire(), "still inside window")

	clock.advance(1 * time.Millisecond)
	assert.True(t, l.TryAcquire(), "window elapsed, acquire should succeed")
}

func TestRelease_FreesBeforeExpiry(t *testing.T) {
	l, _ := newTestLock(time.Hour)

	assert.True(t, l.TryAcquire())
	assert.False(t, l.TryAcquire())

	l.Release()
	assert.True(t, l.TryAcquire(), "acquire after Release should succeed")
}

func TestNew_NonPositiveTTLUsesDefault(t *testing.T) {
	assert.Equal(t, DefaultTTL, New(0).TTL())
	assert.Equal(t, DefaultTTL, New(-time.Second).TTL())
	assert.Equal(t, time.Second, New(time.Second).TTL())
}
