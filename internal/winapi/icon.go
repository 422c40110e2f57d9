//go:build windows

package winapi

import (
	"errors"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

var errNoIcon = errors.New("window exposes no icon")

const iconMessageTimeoutMS = 200

// WindowIcon locates the best available icon for a classic desktop
// window. Preference order follows how the shell itself resolves task
// switcher icons: the window's own icon messages first, then the class
// icon, then the first icon embedded in the executable.
func WindowIcon(h uintptr, exePath string, preferBig bool) (uintptr, func(), error) {
	order := []uintptr{ICON_SMALL2, ICON_SMALL, ICON_BIG}
	if preferBig {
		order = []uintptr{ICON_BIG, ICON_SMALL2, ICON_SMALL}
	}
	for _, which := range order {
		if icon, ok := SendMessageTimeout(h, WM_GETICON, which, 0, iconMessageTimeoutMS); ok && icon != 0 {
			// Icons returned by WM_GETICON remain owned by the window.
			return icon, func() {}, nil
		}
	}
	classOrder := []uintptr{GCLP_HICONSM, GCLP_HICON}
	if preferBig {
		classOrder = []uintptr{GCLP_HICON, GCLP_HICONSM}
	}
	for _, index := range classOrder {
		if icon := ClassLongPtr(h, index); icon != 0 {
			return icon, func() {}, nil
		}
	}
	if exePath != "" {
		if icon, err := extractExecutableIcon(exePath, preferBig); err == nil {
			return icon, func() { procDestroyIcon.Call(icon) }, nil
		}
	}
	return 0, nil, errNoIcon
}

func extractExecutableIcon(exePath string, preferBig bool) (uintptr, error) {
	path, err := windows.UTF16PtrFromString(exePath)
	if err != nil {
		return 0, err
	}
	var big, small uintptr
	n, _, _ := procExtractIconExW.Call(uintptr(unsafe.Pointer(path)), 0,
		uintptr(unsafe.Pointer(&big)), uintptr(unsafe.Pointer(&small)), 1)
	if n == 0 || n == ^uintptr(0) {
		return 0, errNoIcon
	}
	keep, drop := small, big
	if preferBig {
		keep, drop = big, small
	}
	if keep == 0 {
		keep, drop = drop, keep
	}
	if drop != 0 {
		procDestroyIcon.Call(drop)
	}
	if keep == 0 {
		return 0, errNoIcon
	}
	return keep, nil
}

// RenderIcon rasterizes an HICON onto a white square of the given size.
func RenderIcon(icon uintptr, size int) (*image.RGBA, error) {
	screen := ScreenDC()
	defer ReleaseDC(0, screen)
	canvas, err := NewMemoryCanvas(screen, size, size)
	if err != nil {
		return nil, err
	}
	defer canvas.Close()
	canvas.FillWindowColor()
	r, _, _ := procDrawIconEx.Call(canvas.DC, 0, 0, icon,
		uintptr(size), uintptr(size), 0, 0, DI_NORMAL)
	if r == 0 {
		return nil, errNoIcon
	}
	return canvas.Image()
}
