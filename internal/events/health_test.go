package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/winpeek/winpeek/internal/timeouts"
)

// fakeClock is a manually advanced time source shared by the event tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestHealthInactiveUntilMarked(t *testing.T) {
	h := NewHealth().WithClock(newFakeClock().Now)
	assert.False(t, h.Active())
}

func TestHealthActiveWithinWindow(t *testing.T) {
	clock := newFakeClock()
	h := NewHealth().WithClock(clock.Now)

	h.Mark()
	assert.True(t, h.Active())

	clock.Advance(timeouts.HookRecencyWindow - time.Millisecond)
	assert.True(t, h.Active(), "still inside the recency window")

	clock.Advance(2 * time.Millisecond)
	assert.False(t, h.Active(), "window elapsed")
}

func TestHealthRemarkExtendsWindow(t *testing.T) {
	clock := newFakeClock()
	h := NewHealth().WithClock(clock.Now)

	h.Mark()
	clock.Advance(timeouts.HookRecencyWindow / 2)
	h.Mark()
	clock.Advance(timeouts.HookRecencyWindow / 2)

	assert.True(t, h.Active())
}

func TestHealthReset(t *testing.T) {
	h := NewHealth().WithClock(newFakeClock().Now)
	h.Mark()
	h.Reset()
	assert.False(t, h.Active())
}
