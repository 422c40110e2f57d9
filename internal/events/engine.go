package events

import (
	"log/slog"
	"sync"

	"github.com/winpeek/winpeek/internal/logger"
)

// queueDepth bounds the dispatch queue. Producers posting into a full queue
// drop the event rather than stall a hook callback.
const queueDepth = 64

type dispatchItem struct {
	ev     Event
	origin Origin
}

// Engine owns the subscription slots, the producers, and the single
// dispatcher goroutine between them.
//
// Each kind has one callback slot and there is one unified slot; Subscribe
// replaces the previous occupant. Producers start with the first
// subscription and stop with StopAll.
type Engine struct {
	mu       sync.Mutex
	handlers map[Kind]Handler
	all      Handler
	running  bool

	sources []Source
	health  *Health
	log     logger.LoggerInterface

	queue chan dispatchItem
	done  chan struct{}
}

// NewEngine builds an engine over the given producers. Producers are
// started lazily on first subscription.
func NewEngine(health *Health, log logger.LoggerInterface, sources ...Source) *Engine {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if health == nil {
		health = NewHealth()
	}

	return &Engine{
		handlers: make(map[Kind]Handler),
		sources:  sources,
		health:   health,
		log:      log,
	}
}

// Health exposes the hook health tracker for producers to mark.
func (e *Engine) Health() *Health { return e.health }

// Subscribe installs the handler for one event kind, replacing any previous
// handler for that kind. A nil handler clears the slot.
func (e *Engine) Subscribe(k Kind, h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if h == nil {
		delete(e.handlers, k)
		return
	}

	e.handlers[k] = h
	e.ensureStartedLocked()
}

// SubscribeAll installs the unified handler, which receives every event
// kind. It replaces any previous unified handler; nil clears the slot.
func (e *Engine) SubscribeAll(h Handler) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if h == nil {
		e.all = nil
		return
	}

	e.all = h
	e.ensureStartedLocked()
}

// StopAll halts the producers, drains the dispatcher, and clears every
// subscription slot. It blocks until both producers have wound down and is
// safe to call repeatedly or without a prior subscription.
func (e *Engine) StopAll() {
	e.mu.Lock()
	if !e.running {
		e.handlers = make(map[Kind]Handler)
		e.all = nil
		e.mu.Unlock()
		return
	}
	e.running = false
	queue := e.queue
	done := e.done
	e.handlers = make(map[Kind]Handler)
	e.all = nil
	e.mu.Unlock()

	for _, s := range e.sources {
		s.Stop()
	}

	close(queue)
	<-done

	e.health.Reset()
	e.log.Debug("window event delivery stopped")
}

// UsingFallback reports whether the poller is currently the effective
// delivery mechanism, meaning producers are running but no hook event has
// arrived within the recency window.
func (e *Engine) UsingFallback() bool {
	e.mu.Lock()
	running := e.running
	e.mu.Unlock()

	return running && !e.health.Active()
}

// Post accepts an event from a producer. Full queues drop the event; a
// hook callback must never block on a slow subscriber.
func (e *Engine) Post(ev Event, origin Origin) {
	e.mu.Lock()
	running := e.running
	queue := e.queue
	e.mu.Unlock()

	if !running {
		return
	}

	select {
	case queue <- dispatchItem{ev: ev, origin: origin}:
	default:
		e.log.Warn("event queue full, dropping event",
			slog.String("kind", ev.Kind.String()),
			slog.Uint64("hwnd", uint64(ev.Handle)))
	}
}

func (e *Engine) ensureStartedLocked() {
	if e.running {
		return
	}
	e.running = true
	e.queue = make(chan dispatchItem, queueDepth)
	e.done = make(chan struct{})

	go e.dispatch(e.queue, e.done)

	for _, s := range e.sources {
		if err := s.Start(e.Post); err != nil {
			// A failed producer is not fatal; the remaining one still
			// delivers events.
			e.log.Warn("event source failed to start", slog.Any("error", err))
		}
	}

	e.log.Debug("window event delivery started")
}

// dispatch is the single consumer of the queue. Poller events arriving
// while hooks are healthy duplicate what the hooks already delivered, so
// they are dropped here.
func (e *Engine) dispatch(queue chan dispatchItem, done chan struct{}) {
	defer close(done)

	for item := range queue {
		if item.origin == OriginPoller && e.health.Active() {
			continue
		}

		e.mu.Lock()
		h := e.handlers[item.ev.Kind]
		all := e.all
		e.mu.Unlock()

		if h != nil {
			h(item.ev)
		}
		if all != nil {
			all(item.ev)
		}
	}
}
