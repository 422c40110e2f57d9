// Package capture produces window thumbnails through an ordered chain of
// capture strategies, fronted by a freshness and quality gated cache.
package capture

import (
	"errors"

	"github.com/winpeek/winpeek/internal/window"
)

// DefaultWidth and DefaultHeight bound thumbnail output. Captures preserve
// the window aspect ratio within this box.
const (
	DefaultWidth  = 200
	DefaultHeight = 150
)

// ErrInadequate is returned by a strategy whose output did not contain
// enough content to be worth keeping.
var ErrInadequate = errors.New("capture: inadequate result")

// ErrUnsupported is returned by a strategy that cannot run on this system.
var ErrUnsupported = errors.New("capture: not supported")

// Strategy is one way of producing a window thumbnail. Strategies are tried
// in order; a strategy that cannot serve a window either reports false from
// CanCapture or returns an error from Capture, and the next one runs.
type Strategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// CanCapture reports whether the strategy applies to this window in
	// its current state.
	CanCapture(info window.Info) bool

	// Capture produces a PNG data URI no larger than maxWidth x maxHeight.
	Capture(info window.Info, maxWidth, maxHeight int) (string, error)
}
