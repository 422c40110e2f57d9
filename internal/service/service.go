// Package service is the process-wide facade over enumeration, capture,
// icons, focus, and change notifications. One Service is constructed per
// process and owns all long-lived mutable state.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/winpeek/winpeek/internal/config"
	"github.com/winpeek/winpeek/internal/events"
	"github.com/winpeek/winpeek/internal/interfaces"
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/tasks"
	"github.com/winpeek/winpeek/internal/window"
)

// Error taxonomy. Single-window operations surface these; batch listing
// absorbs per-window failures by degrading the affected fields instead.
var (
	// ErrInvalidIdentifier marks a stale or unknown window handle.
	ErrInvalidIdentifier = errors.New("invalid window identifier")

	// ErrCaptureUnavailable marks exhaustion of every capture strategy.
	// Batch paths degrade to the empty image instead of returning it.
	ErrCaptureUnavailable = errors.New("no capture strategy available")

	// ErrPermissionDenied marks an unreadable process path. Batch paths
	// degrade to an empty string instead of returning it.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrHookUnavailable marks failed event hook registration. Delivery
	// transparently falls back to the poller; this is diagnostic only.
	ErrHookUnavailable = errors.New("event hooks unavailable")

	// ErrEncodingFailure marks image compression failure. Batch paths
	// degrade to the empty image instead of returning it.
	ErrEncodingFailure = errors.New("image encoding failed")
)

// ListedWindow is one entry of a window list result.
type ListedWindow struct {
	window.Descriptor
	Thumbnail string `json:"thumbnail"`
	Icon      string `json:"icon"`
}

// MarshalJSON flattens the descriptor wire fields alongside the image
// payloads; the promoted Descriptor marshaler would drop them.
func (w ListedWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID             window.Handle `json:"id"`
		Handle         window.Handle `json:"handle"`
		Title          string        `json:"title"`
		ExecutablePath string        `json:"executablePath"`
		IsVisible      bool          `json:"isVisible"`
		Thumbnail      string        `json:"thumbnail"`
		Icon           string        `json:"icon"`
	}{w.Handle, w.Handle, w.Title, w.ExecutablePath, w.IsVisible, w.Thumbnail, w.Icon})
}

// Deps are the collaborators a Service is built from.
type Deps struct {
	Enumerator interfaces.Enumerator
	Thumbnails interfaces.ThumbnailProvider
	Icons      interfaces.IconProvider
	Focuser    interfaces.Focuser
	Events     *events.Engine
}

// Service coordinates all window view operations.
type Service struct {
	deps     Deps
	settings config.Settings
	log      logger.LoggerInterface

	closeOnce sync.Once
}

// New builds a Service. All dependencies must be non-nil except Events,
// which may be nil when notifications are not used.
func New(deps Deps, settings config.Settings, log logger.LoggerInterface) *Service {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Service{
		deps:     deps,
		settings: settings,
		log:      log,
	}
}

// ListWindows enumerates the eligible windows and attaches a thumbnail and
// icon to each. Per-window capture or icon failures degrade to empty values;
// the listing itself only fails when enumeration does.
func (s *Service) ListWindows(allDesktops bool) ([]ListedWindow, error) {
	infos, err := s.deps.Enumerator.Enumerate(allDesktops)
	if err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", err)
	}

	results := make([]ListedWindow, len(infos))

	// Each window captures on its own worker; the thumbnail and icon
	// caches serialize internally.
	var wg sync.WaitGroup
	for i, info := range infos {
		wg.Add(1)
		go func(i int, info window.Info) {
			defer wg.Done()
			results[i] = s.describe(info)
		}(i, info)
	}
	wg.Wait()

	s.log.Debug("listed windows",
		slog.Int("count", len(results)),
		slog.Bool("allDesktops", allDesktops))

	return results, nil
}

// ListWindowsAsync is the future-returning form of ListWindows.
func (s *Service) ListWindowsAsync(allDesktops bool) *tasks.Future[[]ListedWindow] {
	return tasks.Go(func() ([]ListedWindow, error) {
		return s.ListWindows(allDesktops)
	})
}

// FocusWindow restores the window if minimized, then raises and activates
// it. A stale handle returns ErrInvalidIdentifier; an activation the OS
// refused returns false with no error.
func (s *Service) FocusWindow(id window.Handle) (bool, error) {
	if _, ok := s.deps.Enumerator.Probe(id); !ok {
		return false, fmt.Errorf("focus window %#x: %w", uintptr(id), ErrInvalidIdentifier)
	}

	ok := s.deps.Focuser.Focus(id)
	if !ok {
		s.log.Warn("focus not confirmed", slog.Uint64("hwnd", uint64(id)))
	}

	return ok, nil
}

// FocusWindowAsync is the future-returning form of FocusWindow.
func (s *Service) FocusWindowAsync(id window.Handle) *tasks.Future[bool] {
	return tasks.Go(func() (bool, error) {
		return s.FocusWindow(id)
	})
}

// RefreshThumbnail captures a fresh thumbnail, bypassing but updating the
// cache. A stale handle returns ErrInvalidIdentifier.
func (s *Service) RefreshThumbnail(id window.Handle) (string, error) {
	info, ok := s.deps.Enumerator.Probe(id)
	if !ok {
		return "", fmt.Errorf("refresh thumbnail %#x: %w", uintptr(id), ErrInvalidIdentifier)
	}

	return s.deps.Thumbnails.Refresh(info, s.settings.Thumbnail.Width, s.settings.Thumbnail.Height), nil
}

// RefreshThumbnailAsync is the future-returning form of RefreshThumbnail.
func (s *Service) RefreshThumbnailAsync(id window.Handle) *tasks.Future[string] {
	return tasks.Go(func() (string, error) {
		return s.RefreshThumbnail(id)
	})
}

// Subscribe installs the handler for one event kind, starting event
// delivery if it is not already running.
func (s *Service) Subscribe(kind events.Kind, h events.Handler) {
	if s.deps.Events == nil {
		return
	}
	s.deps.Events.Subscribe(kind, h)
}

// SubscribeAll installs the unified handler for every event kind.
func (s *Service) SubscribeAll(h events.Handler) {
	if s.deps.Events == nil {
		return
	}
	s.deps.Events.SubscribeAll(h)
}

// StopEvents stops delivery and clears all subscriptions. It blocks until
// the hook and poller producers have wound down.
func (s *Service) StopEvents() {
	if s.deps.Events == nil {
		return
	}
	s.deps.Events.StopAll()
}

// UsingFallbackEvents reports whether change notifications are currently
// being served by the fallback poller rather than system hooks.
func (s *Service) UsingFallbackEvents() bool {
	if s.deps.Events == nil {
		return false
	}
	return s.deps.Events.UsingFallback()
}

// Close stops event delivery. Safe to call more than once.
func (s *Service) Close() {
	s.closeOnce.Do(s.StopEvents)
}

func (s *Service) describe(info window.Info) ListedWindow {
	thumb := s.deps.Thumbnails.Thumbnail(info, s.settings.Thumbnail.Width, s.settings.Thumbnail.Height)
	iconURI := s.deps.Icons.Get(info.Handle, info.ExecutablePath, s.settings.IconSize)

	return ListedWindow{
		Descriptor: window.Descriptor{
			Handle:         info.Handle,
			Title:          info.Title,
			ExecutablePath: info.ExecutablePath,
			IsVisible:      info.IsVisible,
		},
		Thumbnail: thumb,
		Icon:      iconURI,
	}
}
