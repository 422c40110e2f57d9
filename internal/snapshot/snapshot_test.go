package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winpeek/winpeek/internal/testutil"
	"github.com/winpeek/winpeek/internal/timeouts"
	"github.com/winpeek/winpeek/internal/window"
)

const handle window.Handle = 0x1234

var bounds = window.Rect{Left: 10, Top: 10, Right: 810, Bottom: 610}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestCacheLookupHit(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))

	uri := testutil.AdequateDataURI()
	require.True(t, c.Store(handle, Entry{DataURI: uri, Bounds: bounds, Width: 200, Height: 150}))

	got, ok := c.Lookup(handle, bounds, 200, 150)
	assert.True(t, ok)
	assert.Equal(t, uri, got)
}

func TestCacheLookupMisses(t *testing.T) {
	tests := []struct {
		name   string
		age    time.Duration
		bounds window.Rect
		width  int
		height int
	}{
		{
			name:   "Expired entry",
			age:    timeouts.ThumbnailTTL,
			bounds: bounds,
			width:  200, height: 150,
		},
		{
			name:   "Moved window",
			bounds: window.Rect{Left: 20, Top: 10, Right: 820, Bottom: 610},
			width:  200, height: 150,
		},
		{
			name:   "Resized window",
			bounds: window.Rect{Left: 10, Top: 10, Right: 900, Bottom: 610},
			width:  200, height: 150,
		},
		{
			name:   "Different output size",
			bounds: bounds,
			width:  400, height: 300,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			c := New(WithClock(clock.Now))
			require.True(t, c.Store(handle, Entry{
				DataURI: testutil.AdequateDataURI(),
				Bounds:  bounds,
				Width:   200,
				Height:  150,
			}))

			clock.Advance(tt.age)

			_, ok := c.Lookup(handle, tt.bounds, tt.width, tt.height)
			assert.False(t, ok)
		})
	}
}

func TestCacheLookupJustBeforeExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))
	require.True(t, c.Store(handle, Entry{
		DataURI: testutil.AdequateDataURI(),
		Bounds:  bounds,
		Width:   200,
		Height:  150,
	}))

	clock.Advance(timeouts.ThumbnailTTL - time.Millisecond)

	_, ok := c.Lookup(handle, bounds, 200, 150)
	assert.True(t, ok, "entry should still be fresh one tick before the TTL")
}

func TestCacheLookupUnknownHandle(t *testing.T) {
	c := New()
	_, ok := c.Lookup(handle, bounds, 200, 150)
	assert.False(t, ok)
}

func TestCacheLastAdequate(t *testing.T) {
	clock := newFakeClock()
	c := New(WithClock(clock.Now))

	uri := testutil.AdequateDataURI()
	require.True(t, c.Store(handle, Entry{DataURI: uri, Bounds: bounds, Width: 200, Height: 150}))

	// Stale and with different geometry, but still the best image we have.
	clock.Advance(time.Hour)

	got, ok := c.LastAdequate(handle)
	assert.True(t, ok)
	assert.Equal(t, uri, got)
}

func TestCacheLastAdequateRejectsSlivers(t *testing.T) {
	c := New()
	require.True(t, c.Store(handle, Entry{DataURI: testutil.SmallDataURI(), Bounds: bounds, Width: 200, Height: 150}))

	_, ok := c.LastAdequate(handle)
	assert.False(t, ok)
}

func TestCacheStoreQualityGate(t *testing.T) {
	c := New()

	good := testutil.AdequateDataURI()
	require.True(t, c.Store(handle, Entry{DataURI: good, Bounds: bounds, Width: 200, Height: 150}))

	// A blank or sliver capture must not evict real content.
	stored := c.Store(handle, Entry{DataURI: testutil.SmallDataURI(), Bounds: bounds, Width: 200, Height: 150})
	assert.False(t, stored)

	got, ok := c.LastAdequate(handle)
	assert.True(t, ok)
	assert.Equal(t, good, got)
}

func TestCacheStoreUpgradesInadequate(t *testing.T) {
	c := New()

	require.True(t, c.Store(handle, Entry{DataURI: testutil.SmallDataURI(), Bounds: bounds, Width: 200, Height: 150}))

	good := testutil.AdequateDataURI()
	assert.True(t, c.Store(handle, Entry{DataURI: good, Bounds: bounds, Width: 200, Height: 150}))

	got, ok := c.LastAdequate(handle)
	assert.True(t, ok)
	assert.Equal(t, good, got)
}

func TestCacheForget(t *testing.T) {
	c := New()
	require.True(t, c.Store(handle, Entry{DataURI: testutil.AdequateDataURI(), Bounds: bounds, Width: 200, Height: 150}))
	require.Equal(t, 1, c.Len())

	c.Forget(handle)

	assert.Equal(t, 0, c.Len())
	_, ok := c.LastAdequate(handle)
	assert.False(t, ok)
}
