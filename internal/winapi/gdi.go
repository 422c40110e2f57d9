//go:build windows

package winapi

import (
	"errors"
	"image"
	"unsafe"
)

var errGDI = errors.New("gdi operation failed")

// MemoryCanvas is an off-screen drawing surface backed by a compatible
// bitmap selected into a memory DC.
type MemoryCanvas struct {
	DC     uintptr
	Bitmap uintptr
	Width  int
	Height int
	old    uintptr
}

// NewMemoryCanvas allocates a canvas compatible with the given DC.
func NewMemoryCanvas(ref uintptr, width, height int) (*MemoryCanvas, error) {
	dc, _, _ := procCreateCompatibleDC.Call(ref)
	if dc == 0 {
		return nil, errGDI
	}
	bmp, _, _ := procCreateCompatibleBmp.Call(ref, uintptr(width), uintptr(height))
	if bmp == 0 {
		procDeleteDC.Call(dc)
		return nil, errGDI
	}
	old, _, _ := procSelectObject.Call(dc, bmp)
	return &MemoryCanvas{DC: dc, Bitmap: bmp, Width: width, Height: height, old: old}, nil
}

func (c *MemoryCanvas) Close() {
	if c.old != 0 {
		procSelectObject.Call(c.DC, c.old)
	}
	procDeleteObject.Call(c.Bitmap)
	procDeleteDC.Call(c.DC)
}

// FillWindowColor paints the whole canvas with the system window color.
func (c *MemoryCanvas) FillWindowColor() {
	brush, _, _ := procGetSysColorBrush.Call(COLOR_WINDOW)
	rc := Rect{Right: int32(c.Width), Bottom: int32(c.Height)}
	procFillRect.Call(c.DC, uintptr(unsafe.Pointer(&rc)), brush)
}

// Image reads the canvas pixels back as an RGBA image. The DIB request
// uses a negative height so rows arrive top-down.
func (c *MemoryCanvas) Image() (*image.RGBA, error) {
	return BitmapImage(c.DC, c.Bitmap, c.Width, c.Height)
}

// BitmapImage extracts pixel data from a 32bpp bitmap.
func BitmapImage(dc, bmp uintptr, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, errGDI
	}
	bi := BitmapInfo{Header: BitmapInfoHeader{
		Width:       int32(width),
		Height:      -int32(height),
		Planes:      1,
		BitCount:    32,
		Compression: BI_RGB,
	}}
	bi.Header.Size = uint32(unsafe.Sizeof(bi.Header))
	buf := make([]byte, width*height*4)
	r, _, _ := procGetDIBits.Call(dc, bmp, 0, uintptr(height),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&bi)), DIB_RGB_COLORS)
	if r == 0 {
		return nil, errGDI
	}
	return bgraImage(buf, width, height), nil
}

func bgraImage(buf []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i+3 < len(buf); i += 4 {
		img.Pix[i+0] = buf[i+2]
		img.Pix[i+1] = buf[i+1]
		img.Pix[i+2] = buf[i+0]
		img.Pix[i+3] = 0xFF
	}
	return img
}

// ScreenDC returns the desktop device context. Release it after use.
func ScreenDC() uintptr {
	dc, _, _ := procGetDC.Call(0)
	return dc
}

func WindowDC(h uintptr) uintptr {
	dc, _, _ := procGetDC.Call(h)
	return dc
}

func ReleaseDC(h, dc uintptr) {
	procReleaseDC.Call(h, dc)
}

// BitBlt copies a rectangle between device contexts.
func BitBlt(dst uintptr, dx, dy, w, h int, src uintptr, sx, sy int) bool {
	r, _, _ := procBitBlt.Call(dst, uintptr(dx), uintptr(dy), uintptr(w), uintptr(h),
		src, uintptr(sx), uintptr(sy), SRCCOPY)
	return r != 0
}

// StretchBltHalftone scales a rectangle between device contexts with
// halftone interpolation.
func StretchBltHalftone(dst uintptr, dx, dy, dw, dh int, src uintptr, sx, sy, sw, sh int) bool {
	procSetStretchBltMode.Call(dst, HALFTONE)
	r, _, _ := procStretchBlt.Call(dst, uintptr(dx), uintptr(dy), uintptr(dw), uintptr(dh),
		src, uintptr(sx), uintptr(sy), uintptr(sw), uintptr(sh), SRCCOPY)
	return r != 0
}

// PrintWindow asks a window to render itself into a DC.
func PrintWindow(h, dc uintptr, flags uintptr) bool {
	r, _, _ := procPrintWindow.Call(h, dc, flags)
	return r != 0
}
