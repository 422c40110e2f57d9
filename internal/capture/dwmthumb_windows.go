//go:build windows

package capture

import (
	"image"
	"time"

	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/timeouts"
	"github.com/winpeek/winpeek/internal/winapi"
	"github.com/winpeek/winpeek/internal/window"
)

// dwmThumbnail captures minimized windows by redirecting their composed
// surface onto a hidden off-screen host. The compositor keeps rendering
// minimized windows, which no direct readback can see.
type dwmThumbnail struct{}

// NewDWMThumbnail returns the strategy for minimized windows.
func NewDWMThumbnail() Strategy { return dwmThumbnail{} }

func (dwmThumbnail) Name() string { return "dwm-thumbnail" }

func (dwmThumbnail) CanCapture(info window.Info) bool {
	return info.IsMinimized
}

func (dwmThumbnail) Capture(info window.Info, maxWidth, maxHeight int) (string, error) {
	result, err := redirectAndRead(uintptr(info.Handle), info, maxWidth, maxHeight, 1)
	if err != nil {
		return "", err
	}
	// Minimized surfaces come up blank while the compositor has no
	// cached frame; an inadequate result must not reach the cache.
	if !imaging.Adequate(result) {
		return "", ErrInadequate
	}
	return result, nil
}

// redirectAndRead registers a thumbnail of the source onto a fresh host
// window, waits for composition, and reads the host surface back. With
// attempts > 1 it polls until the frame has actual content.
func redirectAndRead(source uintptr, info window.Info, maxWidth, maxHeight int, attempts int) (string, error) {
	srcW, srcH := int(info.EffectiveBounds().Width()), int(info.EffectiveBounds().Height())

	host, err := winapi.NewHostWindow(maxWidth, maxHeight)
	if err != nil {
		return "", err
	}
	defer host.Close()

	thumb, err := winapi.RegisterThumbnail(host.Handle, source)
	if err != nil {
		return "", err
	}
	defer thumb.Close()

	if w, h, err := thumb.SourceSize(); err == nil {
		srcW, srcH = w, h
	}
	if srcW <= 0 || srcH <= 0 {
		return "", ErrInadequate
	}

	destW, destH := imaging.FitWithin(srcW, srcH, maxWidth, maxHeight)
	if err := thumb.Show(winapi.Rect{Right: int32(destW), Bottom: int32(destH)}); err != nil {
		return "", err
	}

	winapi.DwmFlush()
	time.Sleep(timeouts.ThumbnailSettleDelay)

	var last string
	for i := 0; i < attempts; i++ {
		if i > 0 {
			time.Sleep(timeouts.FramePollInterval)
			winapi.DwmFlush()
		}
		img, err := readHostSurface(host.Handle, destW, destH)
		if err != nil {
			return "", err
		}
		uniform := imaging.Uniform(img)
		encoded, err := imaging.Encode(img)
		if err != nil {
			return "", err
		}
		last = encoded
		if !uniform {
			return encoded, nil
		}
	}
	return last, nil
}

// readHostSurface copies the host window's painted client area into a
// memory bitmap and decodes the pixels.
func readHostSurface(host uintptr, width, height int) (*image.RGBA, error) {
	dc := winapi.WindowDC(host)
	if dc == 0 {
		return nil, ErrUnsupported
	}
	defer winapi.ReleaseDC(host, dc)

	canvas, err := winapi.NewMemoryCanvas(dc, width, height)
	if err != nil {
		return nil, err
	}
	defer canvas.Close()

	if !winapi.BitBlt(canvas.DC, 0, 0, width, height, dc, 0, 0) {
		return nil, ErrUnsupported
	}
	return canvas.Image()
}
