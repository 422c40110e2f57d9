//go:build windows

package capture

import (
	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/winapi"
	"github.com/winpeek/winpeek/internal/window"
)

// printWindow asks the target to paint itself into an off-screen DC.
// Works for occluded windows, but modern DirectComposition surfaces
// often ignore the request unless the full-content flag is honored.
type printWindow struct{}

// NewPrintWindow returns the self-paint strategy for live windows.
func NewPrintWindow() Strategy { return printWindow{} }

func (printWindow) Name() string { return "print-window" }

func (printWindow) CanCapture(info window.Info) bool {
	return !info.IsMinimized
}

func (printWindow) Capture(info window.Info, maxWidth, maxHeight int) (string, error) {
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

	canvas, err := winapi.NewMemoryCanvas(screen, w, h)
	if err != nil {
		return "", err
	}
	defer canvas.Close()

	// Full content renders composed surfaces, client-only skips the
	// frame, bare is the legacy path. First one the window honors wins.
	flags := []uintptr{winapi.PW_RENDERFULLCONTENT, winapi.PW_CLIENTONLY, 0}
	painted := false
	for _, flag := range flags {
		canvas.FillWindowColor()
		if winapi.PrintWindow(uintptr(info.Handle), canvas.DC, flag) {
			painted = true
			break
		}
	}
	if !painted {
		return "", ErrUnsupported
	}

	img, err := canvas.Image()
	if err != nil {
		return "", err
	}
	if imaging.Uniform(img) {
		return "", ErrInadequate
	}

	return imaging.Encode(imaging.ScaleToFit(img, maxWidth, maxHeight))
}
