package window

import "github.com/winpeek/winpeek/internal/classify"

// DefaultMinWidth and DefaultMinHeight reject windows too small to be real
// application surfaces. Minimized windows are judged by their restored size.
const (
	DefaultMinWidth  int32 = 50
	DefaultMinHeight int32 = 50
)

// Filter decides which windows are eligible for the window list. The
// predicate order matters: cheap structural rejections run before the
// heuristic escape hatches.
type Filter struct {
	Rules     classify.Rules
	MinWidth  int32
	MinHeight int32
}

// NewFilter returns a Filter with the given rules and default size limits.
func NewFilter(rules classify.Rules) Filter {
	return Filter{
		Rules:     rules,
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
	}
}

// Eligible reports whether the window belongs in the window list. Minimized
// windows pass; visibility and size are judged on their restored state.
func (f Filter) Eligible(info Info) bool {
	if f.Rules.IsUtilityOverlay(info.Title, info.ExecutablePath) {
		return false
	}

	if !info.IsVisible {
		return false
	}

	if info.IsToolWindow || info.NoActivate {
		return false
	}

	// Layered windows faded to zero alpha are invisible to the user even
	// though IsWindowVisible still reports true.
	if info.ZeroAlpha {
		return false
	}

	// Untitled windows are normally skipped. Frame hosts, shell windows,
	// and pinned apps carry their caption elsewhere, so they stay.
	if info.Title == "" {
		if !f.Rules.IsHostClass(info.ClassName) &&
			!f.Rules.IsShell(info.ClassName, info.ExecutablePath) {
			if _, ok := f.Rules.PinnedApp(info.Title, info.ExecutablePath); !ok {
				return false
			}
		}
	}

	if info.IsChild {
		return false
	}

	if info.IsPopup && !info.AppWindow {
		if _, ok := f.Rules.PinnedApp(info.Title, info.ExecutablePath); !ok {
			return false
		}
	}

	if info.HasOwner && !info.AppWindow {
		return false
	}

	// Cloaked frame hosts are invisible duplicates of UWP windows that
	// live on another desktop or are suspended.
	if f.Rules.IsHostClass(info.ClassName) && info.IsCloaked {
		return false
	}

	minW, minH := f.MinWidth, f.MinHeight
	if minW <= 0 {
		minW = DefaultMinWidth
	}
	if minH <= 0 {
		minH = DefaultMinHeight
	}

	bounds := info.EffectiveBounds()
	if bounds.Width() < minW || bounds.Height() < minH {
		return false
	}

	return true
}

// DisplayTitle resolves the caption shown for the window. Frame hosts and
// shell windows fall back to the first child title, shell windows then to a
// fixed label, pinned apps to their configured name. The second return is
// false when no usable caption exists, which drops the window from the list.
func (f Filter) DisplayTitle(info Info) (string, bool) {
	if info.Title != "" {
		return info.Title, true
	}

	if f.Rules.IsHostClass(info.ClassName) && info.ChildTitle != "" {
		return info.ChildTitle, true
	}

	if f.Rules.IsShell(info.ClassName, info.ExecutablePath) {
		if info.ChildTitle != "" {
			return info.ChildTitle, true
		}
		return f.Rules.ShellFallbackTitle, f.Rules.ShellFallbackTitle != ""
	}

	if app, ok := f.Rules.PinnedApp(info.Title, info.ExecutablePath); ok && app.Name != "" {
		return app.Name, true
	}

	return "", false
}

// KeepOffDesktop reports whether a window the desktop filter placed on
// another desktop should be listed anyway. Visible windows stay, as do
// pinned apps with visible content.
func (f Filter) KeepOffDesktop(info Info, probeVisible bool) bool {
	if info.IsVisible || probeVisible {
		return true
	}

	if _, ok := f.Rules.PinnedApp(info.Title, info.ExecutablePath); ok {
		if info.IsVisible || info.HasVisibleChild {
			return true
		}
	}

	return false
}
