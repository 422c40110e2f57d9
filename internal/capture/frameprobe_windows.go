//go:build windows

package capture

import (
	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/timeouts"
	"github.com/winpeek/winpeek/internal/window"
)

// frameProbe captures live windows from the compositor instead of the
// window's own painting. It sees hardware-accelerated and protected-DC
// content that PrintWindow renders black, at the cost of needing a few
// frames to populate. Frames are polled until one carries real content.
type frameProbe struct{}

// NewFrameProbe returns the compositor frame strategy for live windows.
func NewFrameProbe() Strategy { return frameProbe{} }

func (frameProbe) Name() string { return "frame-probe" }

func (frameProbe) CanCapture(info window.Info) bool {
	return !info.IsMinimized && !info.IsCloaked && info.IsVisible
}

func (frameProbe) Capture(info window.Info, maxWidth, maxHeight int) (string, error) {
	result, err := redirectAndRead(uintptr(info.Handle), info, maxWidth, maxHeight,
		timeouts.FramePollAttempts)
	if err != nil {
		return "", err
	}
	// A frame that never progressed past a solid fill means the
	// compositor had nothing for this window; let the next strategy try.
	img, derr := imaging.Decode(result)
	if derr != nil || imaging.Uniform(img) {
		return "", ErrInadequate
	}
	return result, nil
}
