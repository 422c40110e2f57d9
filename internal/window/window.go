// Package window defines the window model and the eligibility rules that
// decide which top-level windows belong in a task switcher style list.
package window

import "encoding/json"

// Handle is an opaque OS window handle. It doubles as the stable window
// identifier exposed to callers and stays valid for the window's lifetime.
type Handle uintptr

// Rect is a window rectangle in screen coordinates.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// Width returns the rectangle width in pixels.
func (r Rect) Width() int32 { return r.Right - r.Left }

// Height returns the rectangle height in pixels.
func (r Rect) Height() int32 { return r.Bottom - r.Top }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Descriptor is the per-window record returned by enumeration.
type Descriptor struct {
	Handle         Handle `json:"id"`
	Title          string `json:"title"`
	ExecutablePath string `json:"executablePath"`
	IsVisible      bool   `json:"isVisible"`
}

// MarshalJSON emits the handle under both "id" and "handle". Types that
// embed Descriptor must define their own marshaler or the promoted one
// drops their fields.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID             Handle `json:"id"`
		Handle         Handle `json:"handle"`
		Title          string `json:"title"`
		ExecutablePath string `json:"executablePath"`
		IsVisible      bool   `json:"isVisible"`
	}{d.Handle, d.Handle, d.Title, d.ExecutablePath, d.IsVisible})
}

// Info is a point-in-time snapshot of the facts eligibility decisions are
// made from. The enumerator fills it per window so the predicates stay free
// of OS calls.
type Info struct {
	Handle         Handle
	Title          string
	ClassName      string
	ExecutablePath string

	IsVisible   bool
	IsMinimized bool
	IsCloaked   bool

	IsChild      bool
	IsPopup      bool
	HasOwner     bool
	AppWindow    bool
	IsToolWindow bool
	NoActivate   bool
	ZeroAlpha    bool

	// Bounds is the current window rectangle. RestoredBounds is the normal
	// placement rectangle, meaningful while the window is minimized.
	Bounds         Rect
	RestoredBounds Rect

	// ChildTitle is the first non-empty child window title, used as a
	// caption fallback for frame host and shell windows.
	ChildTitle      string
	HasVisibleChild bool
}

// EffectiveBounds returns the rectangle eligibility and capture decisions
// should use: the restored rectangle while minimized, otherwise the current
// one.
func (i Info) EffectiveBounds() Rect {
	if i.IsMinimized && !i.RestoredBounds.Empty() {
		return i.RestoredBounds
	}
	return i.Bounds
}
