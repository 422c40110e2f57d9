//go:build windows

// Package enumerate walks the top-level windows and turns them into the
// window model the rest of the program works with.
package enumerate

import (
	"log/slog"
	"strings"

	"github.com/winpeek/winpeek/internal/desktop"
	"github.com/winpeek/winpeek/internal/events"
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/winapi"
	"github.com/winpeek/winpeek/internal/window"
)

// Enumerator lists eligible windows and snapshots individual ones.
type Enumerator struct {
	filter  window.Filter
	desktop desktop.Filter
	log     logger.LoggerInterface
}

func New(filter window.Filter, desktopFilter desktop.Filter, log logger.LoggerInterface) *Enumerator {
	if desktopFilter == nil {
		desktopFilter = desktop.AllowAll{}
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Enumerator{filter: filter, desktop: desktopFilter, log: log}
}

// Enumerate returns the eligible windows in z-order. Titles arrive
// already resolved through the caption fallback chain.
func (e *Enumerator) Enumerate(allDesktops bool) ([]window.Info, error) {
	var result []window.Info
	err := winapi.EnumTopLevel(func(h uintptr) bool {
		info := e.probe(h)
		if !e.filter.Eligible(info) {
			return true
		}
		if !allDesktops && !e.onCurrentDesktop(info) {
			e.log.Trace("Skipping off-desktop window",
				slog.Uint64("hwnd", uint64(h)),
				slog.String("title", info.Title))
			return true
		}
		title, ok := e.filter.DisplayTitle(info)
		if !ok {
			return true
		}
		info.Title = title
		result = append(result, info)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Probe snapshots a single window. The second return is false when the
// handle no longer refers to a live window.
func (e *Enumerator) Probe(h window.Handle) (window.Info, bool) {
	if !winapi.IsWindow(uintptr(h)) {
		return window.Info{}, false
	}
	return e.probe(uintptr(h)), true
}

func (e *Enumerator) probe(h uintptr) window.Info {
	style, exStyle := winapi.WindowStyles(h)

	info := window.Info{
		Handle:    window.Handle(h),
		Title:     winapi.WindowText(h),
		ClassName: winapi.ClassName(h),

		IsVisible:   winapi.IsWindowVisible(h),
		IsMinimized: winapi.IsIconic(h),
		IsCloaked:   winapi.IsCloaked(h),

		IsChild:      style&winapi.WS_CHILD != 0,
		IsPopup:      style&winapi.WS_POPUP != 0,
		HasOwner:     winapi.Owner(h) != 0,
		AppWindow:    exStyle&winapi.WS_EX_APPWINDOW != 0,
		IsToolWindow: exStyle&winapi.WS_EX_TOOLWINDOW != 0,
		NoActivate:   exStyle&winapi.WS_EX_NOACTIVATE != 0,
	}

	if exStyle&winapi.WS_EX_LAYERED != 0 {
		info.ZeroAlpha = winapi.LayeredZeroAlpha(h)
	}

	if path, err := winapi.ExecutablePath(h); err == nil {
		info.ExecutablePath = path
	}

	if rc, ok := winapi.WindowRect(h); ok {
		info.Bounds = toRect(rc)
	}
	if rc, ok := winapi.RestoredRect(h); ok {
		info.RestoredBounds = toRect(rc)
	}

	// Caption fallbacks and the off-desktop override need child facts,
	// but only for frame hosts, shell windows, and pinned apps.
	if e.needsChildFacts(info) {
		info.ChildTitle = winapi.FirstChildTitle(h)
		info.HasVisibleChild = winapi.HasVisibleChild(h)
	}

	return info
}

func (e *Enumerator) needsChildFacts(info window.Info) bool {
	rules := e.filter.Rules
	if rules.IsHostClass(info.ClassName) || rules.IsShell(info.ClassName, info.ExecutablePath) {
		return true
	}
	_, pinned := rules.PinnedApp(info.Title, info.ExecutablePath)
	return pinned
}

// onCurrentDesktop applies the virtual desktop filter. Every error path
// keeps the window; losing a real window is worse than showing a stale
// one.
func (e *Enumerator) onCurrentDesktop(info window.Info) bool {
	on, err := e.desktop.OnCurrent(info.Handle)
	if err != nil || on {
		return true
	}

	// The manager judges some hosted windows by a hidden frame. Probe
	// the most recently active popup of the root owner instead; if
	// either surface is visible the window is really on this desktop.
	probe := e.activePopupProbe(uintptr(info.Handle))
	probeVisible := probe != 0 && probe != uintptr(info.Handle) && winapi.IsWindowVisible(probe)

	return e.filter.KeepOffDesktop(info, probeVisible)
}

// activePopupProbe walks from the root owner through the last active
// popup chain until it stabilizes.
func (e *Enumerator) activePopupProbe(h uintptr) uintptr {
	probe := winapi.Ancestor(h, winapi.GA_ROOTOWNER)
	if probe == 0 {
		probe = h
	}
	for i := 0; i < 8; i++ {
		next := winapi.LastActivePopup(probe)
		if next == 0 || next == probe {
			break
		}
		probe = next
	}
	return probe
}

// Poll produces the cheap snapshot the event poller diffs against. The
// checks are a structural subset of full eligibility; the poller only
// needs stable created/closed/minimized signals, not list parity.
func (e *Enumerator) Poll() events.Snapshot {
	snap := events.Snapshot{Foreground: window.Handle(winapi.ForegroundWindow())}
	winapi.EnumTopLevel(func(h uintptr) bool {
		if !winapi.IsWindowVisible(h) {
			return true
		}
		if winapi.Ancestor(h, winapi.GA_ROOT) != h {
			return true
		}
		_, exStyle := winapi.WindowStyles(h)
		if exStyle&winapi.WS_EX_TOOLWINDOW != 0 {
			return true
		}
		if winapi.Owner(h) != 0 {
			return true
		}
		minimized := winapi.IsIconic(h)
		rc, ok := winapi.WindowRect(h)
		if minimized {
			rc, ok = winapi.RestoredRect(h)
		}
		if !ok {
			return true
		}
		bounds := toRect(rc)
		if bounds.Width() < window.DefaultMinWidth || bounds.Height() < window.DefaultMinHeight {
			return true
		}
		title := winapi.WindowText(h)
		if strings.TrimSpace(title) == "" {
			return true
		}
		exe, _ := winapi.ExecutablePath(h)
		snap.Windows = append(snap.Windows, events.PollWindow{
			Handle:         window.Handle(h),
			Title:          title,
			ExecutablePath: exe,
			IsVisible:      true,
			IsMinimized:    minimized,
		})
		return true
	})
	return snap
}

func toRect(rc winapi.Rect) window.Rect {
	return window.Rect{Left: rc.Left, Top: rc.Top, Right: rc.Right, Bottom: rc.Bottom}
}
