//go:build windows

package winapi

import (
	"errors"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

var errHostWindow = errors.New("could not create capture host window")

const hostClassName = "WinpeekCaptureHost"

// registerHostClass registers the window class for off-screen capture hosts.
// Registration happens once per process.
var registerHostClass = sync.OnceValue(func() error {
	wndProc := windows.NewCallback(func(h uintptr, msg uint32, wParam, lParam uintptr) uintptr {
		r, _, _ := procDefWindowProcW.Call(h, uintptr(msg), wParam, lParam)
		return r
	})
	inst, _, _ := procGetModuleHandleW.Call(0)
	name, err := windows.UTF16PtrFromString(hostClassName)
	if err != nil {
		return err
	}
	brush, _, _ := procGetSysColorBrush.Call(COLOR_WINDOW)
	wc := WndClassEx{
		Style:      CS_HREDRAW | CS_VREDRAW,
		WndProc:    wndProc,
		Instance:   inst,
		Background: brush,
		ClassName:  name,
	}
	wc.Size = uint32(unsafe.Sizeof(wc))
	if r, _, _ := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); r == 0 {
		return errHostWindow
	}
	return nil
})

// HostWindow is an invisible tool window placed far off-screen. The
// compositor still paints thumbnail redirections onto it, so its DC can
// be read back without anything appearing on a monitor.
type HostWindow struct {
	Handle uintptr
	Width  int
	Height int
}

// NewHostWindow creates and shows (without activation) an off-screen host.
func NewHostWindow(width, height int) (*HostWindow, error) {
	if err := registerHostClass(); err != nil {
		return nil, err
	}
	name, err := windows.UTF16PtrFromString(hostClassName)
	if err != nil {
		return nil, err
	}
	inst, _, _ := procGetModuleHandleW.Call(0)
	h, _, _ := procCreateWindowExW.Call(
		WS_EX_TOOLWINDOW|WS_EX_NOACTIVATE,
		uintptr(unsafe.Pointer(name)),
		0,
		WS_POPUP,
		coord(-32000), coord(-32000),
		uintptr(width), uintptr(height),
		0, 0, inst, 0)
	if h == 0 {
		return nil, errHostWindow
	}
	ShowWindow(h, SW_SHOWNOACTIVATE)
	procSetWindowPos.Call(h, HWND_BOTTOM, coord(-32000), coord(-32000),
		uintptr(width), uintptr(height), SWP_NOACTIVATE)
	procUpdateWindow.Call(h)
	return &HostWindow{Handle: h, Width: width, Height: height}, nil
}

func (w *HostWindow) Close() {
	procDestroyWindow.Call(w.Handle)
}

// coord packs a possibly negative screen coordinate into the low 32
// bits of a uintptr, which is all the window manager reads.
func coord(v int32) uintptr {
	return uintptr(uint32(v))
}
