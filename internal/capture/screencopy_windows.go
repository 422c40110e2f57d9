//go:build windows

package capture

import (
	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/winapi"
	"github.com/winpeek/winpeek/internal/window"
)

// screenCopy blits the window's rectangle straight off the desktop.
// Last resort: whatever overlaps the window on screen ends up in the
// thumbnail, but it never comes back black.
type screenCopy struct{}

// NewScreenCopy returns the desktop blit strategy.
func NewScreenCopy() Strategy { return screenCopy{} }

func (screenCopy) Name() string { return "screen-copy" }

func (screenCopy) CanCapture(info window.Info) bool {
	return !info.IsMinimized && info.IsVisible
}

func (screenCopy) Capture(info window.Info, maxWidth, maxHeight int) (string, error) {
	bounds := info.Bounds
	w, h := int(bounds.Width()), int(bounds.Height())
	if w <= 0 || h <= 0 {
		return "", ErrInadequate
	}

	screen := winapi.ScreenDC()
	if screen == 0 {
		return "", ErrUnsupported
	}
	defer winapi.ReleaseDC(0, screen)

	full, err := winapi.NewMemoryCanvas(screen, w, h)
	if err != nil {
		return "", err
	}
	defer full.Close()

	if !winapi.BitBlt(full.DC, 0, 0, w, h, screen, int(bounds.Left), int(bounds.Top)) {
		return "", ErrUnsupported
	}

	destW, destH := imaging.FitWithin(w, h, maxWidth, maxHeight)
	scaled, err := winapi.NewMemoryCanvas(screen, destW, destH)
	if err != nil {
		return "", err
	}
	defer scaled.Close()

	if !winapi.StretchBltHalftone(scaled.DC, 0, 0, destW, destH, full.DC, 0, 0, w, h) {
		return "", ErrUnsupported
	}

	img, err := scaled.Image()
	if err != nil {
		return "", err
	}
	return imaging.Encode(img)
}
