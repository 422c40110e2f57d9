package events

import (
	"sync"
	"time"

	"github.com/winpeek/winpeek/internal/timeouts"
	"github.com/winpeek/winpeek/internal/window"
)

// PollWindow is one window as seen by a poll pass.
type PollWindow struct {
	Handle         window.Handle
	Title          string
	ExecutablePath string
	IsVisible      bool
	IsMinimized    bool
}

// Snapshot is the full result of one poll pass.
type Snapshot struct {
	Foreground window.Handle
	Windows    []PollWindow
}

// Lister produces poll snapshots of the current top-level windows.
type Lister interface {
	Poll() Snapshot
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func() Snapshot

func (f ListerFunc) Poll() Snapshot { return f() }

// Poller re-enumerates windows on a fixed interval and posts the diffs
// against its previous pass: created and closed windows, minimize state
// flips, and foreground changes.
//
// The poller always posts what it sees; arbitration against hook delivery
// happens in the engine's dispatcher. Tracking state advances every tick
// regardless, so a suppressed change is never replayed later.
type Poller struct {
	lister   Lister
	interval time.Duration

	mu       sync.Mutex
	stopCh   chan struct{}
	doneCh   chan struct{}
	firstRun bool

	known     map[window.Handle]struct{}
	minimized map[window.Handle]bool
	lastFg    window.Handle
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) { p.interval = d }
}

// NewPoller returns a stopped poller over the given lister.
func NewPoller(lister Lister, opts ...PollerOption) *Poller {
	p := &Poller{
		lister:    lister,
		interval:  timeouts.EventPollInterval,
		firstRun:  true,
		known:     make(map[window.Handle]struct{}),
		minimized: make(map[window.Handle]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the poll loop.
func (p *Poller) Start(post PostFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopCh != nil {
		return nil
	}

	p.known = make(map[window.Handle]struct{})
	p.minimized = make(map[window.Handle]bool)
	p.lastFg = 0
	p.firstRun = true

	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})

	go p.run(post, p.stopCh, p.doneCh)
	return nil
}

// Stop halts the poll loop and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	stopCh, doneCh := p.stopCh, p.doneCh
	p.stopCh, p.doneCh = nil, nil
	p.mu.Unlock()

	if stopCh == nil {
		return
	}

	close(stopCh)
	<-doneCh
}

func (p *Poller) run(post PostFunc, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			p.Tick(post)
		}
	}
}

// Tick runs one poll pass. Exposed so the loop body can be driven directly
// by tests.
func (p *Poller) Tick(post PostFunc) {
	snap := p.lister.Poll()

	p.mu.Lock()
	defer p.mu.Unlock()

	// The first pass seeds tracking state without emitting; everything it
	// sees predates the subscription.
	seed := p.firstRun
	p.firstRun = false

	if snap.Foreground != 0 && snap.Foreground != p.lastFg {
		if !seed {
			if fg, ok := findWindow(snap.Windows, snap.Foreground); ok {
				post(fg.event(Focused), OriginPoller)
			} else {
				post(Event{Kind: Focused, Handle: snap.Foreground}, OriginPoller)
			}
		}
		p.lastFg = snap.Foreground
	}

	current := make(map[window.Handle]struct{}, len(snap.Windows))
	for _, w := range snap.Windows {
		current[w.Handle] = struct{}{}

		if _, ok := p.known[w.Handle]; !ok {
			p.known[w.Handle] = struct{}{}
			p.minimized[w.Handle] = w.IsMinimized
			if !seed {
				post(w.event(Created), OriginPoller)
			}
			continue
		}

		if was := p.minimized[w.Handle]; was != w.IsMinimized {
			p.minimized[w.Handle] = w.IsMinimized
			if !seed {
				if w.IsMinimized {
					post(w.event(Minimized), OriginPoller)
				} else {
					post(w.event(Restored), OriginPoller)
				}
			}
		}
	}

	for h := range p.known {
		if _, ok := current[h]; !ok {
			delete(p.known, h)
			delete(p.minimized, h)
			if !seed {
				// The window is already gone; only the handle survives.
				post(Event{Kind: Closed, Handle: h}, OriginPoller)
			}
		}
	}
}

func (w PollWindow) event(k Kind) Event {
	return Event{
		Kind:           k,
		Handle:         w.Handle,
		Title:          w.Title,
		ExecutablePath: w.ExecutablePath,
		IsVisible:      w.IsVisible,
	}
}

func findWindow(windows []PollWindow, h window.Handle) (PollWindow, bool) {
	for _, w := range windows {
		if w.Handle == h {
			return w, true
		}
	}
	return PollWindow{}, false
}
