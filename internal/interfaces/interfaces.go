// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

import "github.com/winpeek/winpeek/internal/window"

// Enumerator lists the eligible top-level windows.
type Enumerator interface {
	// Enumerate returns eligible windows in z-order. When allDesktops is
	// false, windows on other virtual desktops are filtered out,
	// fail-open.
	Enumerate(allDesktops bool) ([]window.Info, error)

	// Probe snapshots one window by handle. The second return is false
	// when the handle no longer refers to a live window.
	Probe(h window.Handle) (window.Info, bool)
}

// ThumbnailProvider produces thumbnail data URIs for windows.
type ThumbnailProvider interface {
	// Thumbnail returns a cached or fresh thumbnail. Never fails; total
	// capture failure yields the empty image.
	Thumbnail(info window.Info, maxWidth, maxHeight int) string

	// Refresh captures unconditionally, updating the cache.
	Refresh(info window.Info, maxWidth, maxHeight int) string

	// Forget drops cached state for a closed window.
	Forget(h window.Handle)
}

// IconProvider resolves application icons for windows.
type IconProvider interface {
	// Get returns the icon data URI, degrading to the empty image.
	Get(h window.Handle, exePath string, size int) string
}

// Focuser restores and activates windows.
type Focuser interface {
	// Focus restores the window if minimized, then raises and activates
	// it. Returns false when activation could not be verified.
	Focus(h window.Handle) bool
}
