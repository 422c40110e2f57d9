// Package desktop filters windows by virtual desktop membership.
//
// Membership checks go through the shell's virtual desktop manager, which is
// an optional facility. Every failure mode leans towards inclusion: when the
// manager is unavailable or a query fails, the window is treated as being on
// the current desktop rather than silently dropped.
package desktop

import "github.com/winpeek/winpeek/internal/window"

// Filter answers whether a window lives on the active virtual desktop.
type Filter interface {
	// OnCurrent reports whether the window is on the active virtual
	// desktop. Callers must treat an error as "include the window".
	OnCurrent(handle window.Handle) (bool, error)

	// Close releases the underlying manager. Safe to call more than once.
	Close()
}

// AllowAll is a Filter that keeps every window. It stands in when the
// virtual desktop manager cannot be created.
type AllowAll struct{}

func (AllowAll) OnCurrent(window.Handle) (bool, error) { return true, nil }
func (AllowAll) Close()                                {}
