package events

import (
	"sync/atomic"
	"time"

	"github.com/winpeek/winpeek/internal/timeouts"
)

// Health tracks when the last hook event arrived. The poller's output is
// suppressed while hooks look alive, which is defined as any hook event
// within the recency window.
type Health struct {
	lastNano atomic.Int64
	window   time.Duration
	now      func() time.Time
}

// NewHealth returns a Health with the default recency window.
func NewHealth() *Health {
	return &Health{
		window: timeouts.HookRecencyWindow,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (h *Health) WithClock(now func() time.Time) *Health {
	h.now = now
	return h
}

// Mark records a hook event arrival. Called from every raw hook callback,
// including ones that produce no subscriber event.
func (h *Health) Mark() {
	h.lastNano.Store(h.now().UnixNano())
}

// Active reports whether a hook event arrived within the recency window.
func (h *Health) Active() bool {
	last := h.lastNano.Load()
	if last == 0 {
		return false
	}
	return h.now().Sub(time.Unix(0, last)) < h.window
}

// Reset clears the recorded arrival, as if no hook event was ever seen.
func (h *Health) Reset() {
	h.lastNano.Store(0)
}
