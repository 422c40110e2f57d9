//go:build windows

package events

import (
	"log/slog"

	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/winapi"
	"github.com/winpeek/winpeek/internal/window"
)

// Prober supplies window facts for hook event payloads.
type Prober interface {
	Probe(h window.Handle) (window.Info, bool)
}

// watchedEvents is the set of accessibility events the hook source
// subscribes to. One hook per event keeps the callback free of range
// filtering.
var watchedEvents = []uint32{
	winapi.EVENT_SYSTEM_FOREGROUND,
	winapi.EVENT_SYSTEM_MINIMIZESTART,
	winapi.EVENT_SYSTEM_MINIMIZEEND,
	winapi.EVENT_OBJECT_CREATE,
	winapi.EVENT_OBJECT_DESTROY,
	winapi.EVENT_OBJECT_SHOW,
	winapi.EVENT_OBJECT_HIDE,
	winapi.EVENT_OBJECT_STATECHANGE,
	winapi.EVENT_OBJECT_CLOAKED,
	winapi.EVENT_OBJECT_UNCLOAKED,
}

// HookSource produces lifecycle events from system event hooks. Every
// callback marks hook health, even ones that map to no subscriber
// event, so the poller stays suppressed while hooks deliver anything.
type HookSource struct {
	health *Health
	prober Prober
	log    logger.LoggerInterface

	post  PostFunc
	hooks *winapi.WinEventHooks
}

func NewHookSource(health *Health, prober Prober, log logger.LoggerInterface) *HookSource {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &HookSource{health: health, prober: prober, log: log}
}

func (s *HookSource) Start(post PostFunc) error {
	s.post = post
	hooks, err := winapi.StartWinEventHooks(watchedEvents, s.handle)
	if err != nil {
		return err
	}
	s.hooks = hooks
	s.log.Debug("Event hooks installed", slog.Int("count", len(watchedEvents)))
	return nil
}

func (s *HookSource) Stop() {
	if s.hooks != nil {
		s.hooks.Stop()
		s.hooks = nil
	}
}

// handle runs on the hook thread. It maps raw accessibility events to
// lifecycle kinds and posts them; anything slow belongs elsewhere.
func (s *HookSource) handle(event uint32, hwnd uintptr, objectID, childID int32) {
	s.health.Mark()

	if objectID != winapi.OBJID_WINDOW && objectID != winapi.OBJID_CLIENT {
		return
	}
	if childID != 0 || hwnd == 0 {
		return
	}

	switch event {
	case winapi.EVENT_OBJECT_DESTROY:
		// The window is already gone; a handle is all that remains.
		s.post(Event{Kind: Closed, Handle: window.Handle(hwnd)}, OriginHook)
		return

	case winapi.EVENT_SYSTEM_FOREGROUND:
		s.postFor(Focused, topLevel(hwnd))

	case winapi.EVENT_OBJECT_CREATE:
		s.postFor(Created, hwnd)

	case winapi.EVENT_OBJECT_SHOW:
		s.postFor(Restored, topLevel(hwnd))

	case winapi.EVENT_OBJECT_HIDE:
		s.postFor(Minimized, topLevel(hwnd))

	case winapi.EVENT_OBJECT_CLOAKED:
		s.postFor(Minimized, topLevel(hwnd))

	case winapi.EVENT_OBJECT_UNCLOAKED:
		s.postFor(Restored, topLevel(hwnd))

	case winapi.EVENT_SYSTEM_MINIMIZESTART:
		s.postFor(Minimized, validOrForeground(hwnd))

	case winapi.EVENT_SYSTEM_MINIMIZEEND:
		s.postFor(Restored, validOrForeground(hwnd))

	case winapi.EVENT_OBJECT_STATECHANGE:
		h := topLevel(hwnd)
		if winapi.IsIconic(h) {
			s.postFor(Minimized, h)
		} else if winapi.IsWindowVisible(h) {
			s.postFor(Restored, h)
		}
	}
}

func (s *HookSource) postFor(kind Kind, hwnd uintptr) {
	if hwnd == 0 {
		return
	}
	info, ok := s.prober.Probe(window.Handle(hwnd))
	if !ok {
		return
	}
	s.post(Event{
		Kind:           kind,
		Handle:         info.Handle,
		Title:          info.Title,
		ExecutablePath: info.ExecutablePath,
		IsVisible:      info.IsVisible,
	}, OriginHook)
}

// topLevel maps a possibly nested window to its top-level ancestor.
func topLevel(hwnd uintptr) uintptr {
	if root := winapi.Ancestor(hwnd, winapi.GA_ROOT); root != 0 {
		return root
	}
	return hwnd
}

// validOrForeground substitutes the foreground window for handles that
// died between event and delivery, which minimize events are prone to.
func validOrForeground(hwnd uintptr) uintptr {
	if winapi.IsWindow(hwnd) {
		return topLevel(hwnd)
	}
	return winapi.ForegroundWindow()
}
