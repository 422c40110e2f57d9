package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winpeek/winpeek/internal/window"
)

// recorder collects posted events for assertions.
type recorder struct {
	events  []Event
	origins []Origin
}

func (r *recorder) post(ev Event, origin Origin) {
	r.events = append(r.events, ev)
	r.origins = append(r.origins, origin)
}

func (r *recorder) kinds() []Kind {
	kinds := make([]Kind, len(r.events))
	for i, ev := range r.events {
		kinds[i] = ev.Kind
	}
	return kinds
}

func pollWindow(h window.Handle, title string, minimized bool) PollWindow {
	return PollWindow{
		Handle:         h,
		Title:          title,
		ExecutablePath: `C:\app.exe`,
		IsVisible:      true,
		IsMinimized:    minimized,
	}
}

// scriptedLister replays a sequence of snapshots, repeating the last one.
type scriptedLister struct {
	snaps []Snapshot
	i     int
}

func (l *scriptedLister) Poll() Snapshot {
	if l.i >= len(l.snaps) {
		return l.snaps[len(l.snaps)-1]
	}
	snap := l.snaps[l.i]
	l.i++
	return snap
}

func TestPollerFirstPassSeedsWithoutEmitting(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{{
		Foreground: 1,
		Windows:    []PollWindow{pollWindow(1, "A", false), pollWindow(2, "B", true)},
	}}}
	p := NewPoller(lister)

	rec := &recorder{}
	p.Tick(rec.post)
	assert.Empty(t, rec.events, "everything the first pass sees predates the subscription")

	// The second pass diffs against the seeded state, not an empty one.
	p.Tick(rec.post)
	assert.Empty(t, rec.events, "unchanged snapshot should produce no events")
}

func TestPollerCreated(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false)}},
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false), pollWindow(2, "B", false)}},
	}}
	p := NewPoller(lister)

	rec := &recorder{}
	p.Tick(rec.post)
	p.Tick(rec.post)

	require.Len(t, rec.events, 1)
	assert.Equal(t, Created, rec.events[0].Kind)
	assert.Equal(t, window.Handle(2), rec.events[0].Handle)
	assert.Equal(t, "B", rec.events[0].Title)
	assert.Equal(t, OriginPoller, rec.origins[0])
}

func TestPollerClosed(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false), pollWindow(2, "B", false)}},
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false)}},
	}}
	p := NewPoller(lister)

	rec := &recorder{}
	p.Tick(rec.post)
	p.Tick(rec.post)

	require.Len(t, rec.events, 1)
	assert.Equal(t, Closed, rec.events[0].Kind)
	assert.Equal(t, window.Handle(2), rec.events[0].Handle)
	assert.Empty(t, rec.events[0].Title, "closed windows carry only the handle")
	assert.False(t, rec.events[0].IsVisible)
}

func TestPollerMinimizeRestoreCycle(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false)}},
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", true)}},
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false)}},
	}}
	p := NewPoller(lister)

	rec := &recorder{}
	p.Tick(rec.post)
	p.Tick(rec.post)
	p.Tick(rec.post)

	assert.Equal(t, []Kind{Minimized, Restored}, rec.kinds())
}

func TestPollerFocusChange(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false), pollWindow(2, "B", false)}},
		{Foreground: 2, Windows: []PollWindow{pollWindow(1, "A", false), pollWindow(2, "B", false)}},
		{Foreground: 2, Windows: []PollWindow{pollWindow(1, "A", false), pollWindow(2, "B", false)}},
	}}
	p := NewPoller(lister)

	rec := &recorder{}
	p.Tick(rec.post)
	p.Tick(rec.post)
	p.Tick(rec.post)

	require.Len(t, rec.events, 1, "an unchanged foreground must not re-emit")
	assert.Equal(t, Focused, rec.events[0].Kind)
	assert.Equal(t, window.Handle(2), rec.events[0].Handle)
	assert.Equal(t, "B", rec.events[0].Title, "payload should come from the snapshot")
}

func TestPollerFocusToUntrackedWindow(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false)}},
		{Foreground: 9, Windows: []PollWindow{pollWindow(1, "A", false)}},
	}}
	p := NewPoller(lister)

	rec := &recorder{}
	p.Tick(rec.post)
	p.Tick(rec.post)

	require.Len(t, rec.events, 1)
	assert.Equal(t, Focused, rec.events[0].Kind)
	assert.Equal(t, window.Handle(9), rec.events[0].Handle)
	assert.Empty(t, rec.events[0].Title)
}

func TestPollerCombinedDiff(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{
		{Foreground: 1, Windows: []PollWindow{pollWindow(1, "A", false), pollWindow(2, "B", false)}},
		{Foreground: 3, Windows: []PollWindow{pollWindow(1, "A", true), pollWindow(3, "C", false)}},
	}}
	p := NewPoller(lister)

	rec := &recorder{}
	p.Tick(rec.post)
	p.Tick(rec.post)

	assert.ElementsMatch(t, []Kind{Focused, Minimized, Created, Closed}, rec.kinds())
}

func TestPollerStartStopRestart(t *testing.T) {
	lister := &scriptedLister{snaps: []Snapshot{{Windows: []PollWindow{pollWindow(1, "A", false)}}}}
	p := NewPoller(lister, WithInterval(time.Millisecond))

	rec := &recorder{}
	require.NoError(t, p.Start(func(Event, Origin) {}))
	require.NoError(t, p.Start(func(Event, Origin) {}), "double start is a no-op")
	p.Stop()
	p.Stop() // idempotent

	// A restart reseeds; the pre-existing window is not replayed as created.
	require.NoError(t, p.Start(rec.post))
	p.Stop()
	assert.Empty(t, rec.events)
}
