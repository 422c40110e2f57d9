package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winpeek/winpeek/internal/timeouts"
	"github.com/winpeek/winpeek/internal/window"
)

// collector is a thread-safe event sink with a wait helper.
type collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *collector) handler(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) snapshot() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Event(nil), c.events...)
}

func (c *collector) waitFor(t *testing.T, n int) []Event {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if evs := c.snapshot(); len(evs) >= n {
			return evs
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, have %d", n, len(c.snapshot()))
	return nil
}

// stubSource records Start/Stop calls and exposes the post func.
type stubSource struct {
	mu       sync.Mutex
	post     PostFunc
	starts   int
	stops    int
	startErr error
}

func (s *stubSource) Start(post PostFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.starts++
	if s.startErr != nil {
		return s.startErr
	}
	s.post = post
	return nil
}

func (s *stubSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stops++
	s.post = nil
}

func (s *stubSource) emit(ev Event, origin Origin) {
	s.mu.Lock()
	post := s.post
	s.mu.Unlock()
	if post != nil {
		post(ev, origin)
	}
}

func (s *stubSource) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.starts, s.stops
}

func event(k Kind, h window.Handle) Event {
	return Event{Kind: k, Handle: h, Title: "W", IsVisible: true}
}

func TestEngineDeliversToKindSlot(t *testing.T) {
	src := &stubSource{}
	e := NewEngine(nil, nil, src)
	defer e.StopAll()

	focused := &collector{}
	e.Subscribe(Focused, focused.handler)

	src.emit(event(Focused, 1), OriginHook)
	src.emit(event(Created, 2), OriginHook)

	evs := focused.waitFor(t, 1)
	assert.Equal(t, Focused, evs[0].Kind)
	assert.Equal(t, window.Handle(1), evs[0].Handle)

	time.Sleep(10 * time.Millisecond)
	assert.Len(t, focused.snapshot(), 1, "other kinds must not reach the slot")
}

func TestEngineUnifiedSlotSeesEverything(t *testing.T) {
	src := &stubSource{}
	e := NewEngine(nil, nil, src)
	defer e.StopAll()

	all := &collector{}
	e.SubscribeAll(all.handler)

	src.emit(event(Focused, 1), OriginHook)
	src.emit(event(Created, 2), OriginHook)
	src.emit(event(Closed, 3), OriginHook)

	evs := all.waitFor(t, 3)
	assert.Equal(t, []Kind{Focused, Created, Closed}, []Kind{evs[0].Kind, evs[1].Kind, evs[2].Kind})
}

func TestEngineSubscribeReplacesHandler(t *testing.T) {
	src := &stubSource{}
	e := NewEngine(nil, nil, src)
	defer e.StopAll()

	first := &collector{}
	second := &collector{}
	e.Subscribe(Created, first.handler)
	e.Subscribe(Created, second.handler)

	src.emit(event(Created, 1), OriginHook)

	second.waitFor(t, 1)
	assert.Empty(t, first.snapshot(), "replaced handler must not be invoked")
}

func TestEngineSubscribeNilClearsSlot(t *testing.T) {
	src := &stubSource{}
	e := NewEngine(nil, nil, src)
	defer e.StopAll()

	c := &collector{}
	e.Subscribe(Created, c.handler)
	e.Subscribe(Created, nil)

	src.emit(event(Created, 1), OriginHook)
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, c.snapshot())
}

func TestEngineStartsSourcesOnce(t *testing.T) {
	src := &stubSource{}
	e := NewEngine(nil, nil, src)
	defer e.StopAll()

	e.Subscribe(Created, func(Event) {})
	e.Subscribe(Focused, func(Event) {})
	e.SubscribeAll(func(Event) {})

	starts, _ := src.counts()
	assert.Equal(t, 1, starts)
}

func TestEngineSurvivesFailedSource(t *testing.T) {
	bad := &stubSource{startErr: assert.AnError}
	good := &stubSource{}
	e := NewEngine(nil, nil, bad, good)
	defer e.StopAll()

	c := &collector{}
	e.SubscribeAll(c.handler)

	good.emit(event(Created, 1), OriginPoller)
	c.waitFor(t, 1)
}

func TestEngineStopAll(t *testing.T) {
	src := &stubSource{}
	e := NewEngine(nil, nil, src)

	c := &collector{}
	e.Subscribe(Created, c.handler)
	e.StopAll()

	_, stops := src.counts()
	assert.Equal(t, 1, stops)
	assert.False(t, e.UsingFallback(), "a stopped engine is not in fallback")

	// Posting after stop is a silent no-op.
	e.Post(event(Created, 1), OriginHook)
	time.Sleep(10 * time.Millisecond)
	assert.Empty(t, c.snapshot())

	e.StopAll() // idempotent
}

func TestEngineRestartsAfterStopAll(t *testing.T) {
	src := &stubSource{}
	e := NewEngine(nil, nil, src)

	e.Subscribe(Created, func(Event) {})
	e.StopAll()

	c := &collector{}
	e.Subscribe(Created, c.handler)
	defer e.StopAll()

	src.emit(event(Created, 1), OriginHook)
	c.waitFor(t, 1)

	starts, _ := src.counts()
	assert.Equal(t, 2, starts)
}

func TestEngineSuppressesPollerWhileHooksHealthy(t *testing.T) {
	clock := newFakeClock()
	health := NewHealth().WithClock(clock.Now)
	src := &stubSource{}
	e := NewEngine(health, nil, src)
	defer e.StopAll()

	c := &collector{}
	e.SubscribeAll(c.handler)

	// Hooks just delivered; poller output is a duplicate.
	health.Mark()
	src.emit(event(Created, 1), OriginPoller)
	src.emit(event(Created, 2), OriginHook)

	evs := c.waitFor(t, 1)
	require.Len(t, evs, 1)
	assert.Equal(t, window.Handle(2), evs[0].Handle, "only the hook event should get through")

	// Hooks went quiet; the poller becomes the effective producer.
	clock.Advance(timeouts.HookRecencyWindow + time.Second)
	src.emit(event(Created, 3), OriginPoller)

	evs = c.waitFor(t, 2)
	assert.Equal(t, window.Handle(3), evs[1].Handle)
}

func TestEngineUsingFallback(t *testing.T) {
	clock := newFakeClock()
	health := NewHealth().WithClock(clock.Now)
	e := NewEngine(health, nil, &stubSource{})
	defer e.StopAll()

	assert.False(t, e.UsingFallback(), "not running yet")

	e.Subscribe(Created, func(Event) {})
	assert.True(t, e.UsingFallback(), "running with no hook event seen")

	health.Mark()
	assert.False(t, e.UsingFallback(), "recent hook event means hooks deliver")

	clock.Advance(timeouts.HookRecencyWindow + time.Second)
	assert.True(t, e.UsingFallback(), "hooks went quiet")
}
