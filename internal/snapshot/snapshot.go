// Package snapshot caches encoded window thumbnails keyed by window handle.
//
// An entry is reused only while it is fresh and the window geometry and the
// requested output size still match what it was captured with. Entries that
// hold real content are protected against being replaced by slivers captured
// while the window was minimized.
package snapshot

import (
	"sync"
	"time"

	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/timeouts"
	"github.com/winpeek/winpeek/internal/window"
)

// Entry is one cached thumbnail.
type Entry struct {
	DataURI    string
	Bounds     window.Rect
	Width      int
	Height     int
	CapturedAt time.Time
}

// Adequate reports whether the entry holds real window content.
func (e Entry) Adequate() bool { return imaging.Adequate(e.DataURI) }

// Cache is a TTL and geometry gated thumbnail cache. The zero value is not
// usable; construct with New.
type Cache struct {
	mu      sync.Mutex
	entries map[window.Handle]Entry
	ttl     time.Duration
	now     func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL overrides the freshness window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// New returns an empty cache with the default TTL.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[window.Handle]Entry),
		ttl:     timeouts.ThumbnailTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the cached thumbnail if it is fresh and was captured for
// the same window geometry and output size.
func (c *Cache) Lookup(h window.Handle, bounds window.Rect, width, height int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[h]
	if !ok {
		return "", false
	}

	if e.Width != width || e.Height != height {
		return "", false
	}

	if e.Bounds != bounds {
		return "", false
	}

	if c.now().Sub(e.CapturedAt) >= c.ttl {
		return "", false
	}

	return e.DataURI, true
}

// LastAdequate returns the last cached thumbnail with real content for the
// window, regardless of age or geometry. Minimized windows prefer this over
// recapturing a blank surface.
func (c *Cache) LastAdequate(h window.Handle) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[h]
	if !ok || !e.Adequate() {
		return "", false
	}

	return e.DataURI, true
}

// Store records a freshly captured thumbnail. An adequate entry is never
// replaced by an inadequate one for the same handle; the store is dropped
// instead and the method reports false.
func (c *Cache) Store(h window.Handle, e Entry) bool {
	if e.CapturedAt.IsZero() {
		e.CapturedAt = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[h]; ok && old.Adequate() && !e.Adequate() {
		return false
	}

	c.entries[h] = e
	return true
}

// Forget drops the entry for a window, typically after it closes.
func (c *Cache) Forget(h window.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, h)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
