//go:build windows

package winapi

import (
	"errors"
	"unsafe"
)

var errVirtualDesktop = errors.New("virtual desktop manager unavailable")

var (
	clsidVirtualDesktopManager = guid("{AA509086-5CA9-4C25-8F95-589D3C07B48A}")
	iidVirtualDesktopManager   = guid("{A5CD92FF-29BE-454C-8D04-D82879FB3F1B}")
)

// VirtualDesktopManager answers which virtual desktop a window lives
// on. Instances are apartment-bound; use from the creating goroutine.
type VirtualDesktopManager struct {
	obj uintptr
}

func NewVirtualDesktopManager() (*VirtualDesktopManager, error) {
	var obj uintptr
	hr, _, _ := procCoCreateInstance.Call(
		uintptr(unsafe.Pointer(&clsidVirtualDesktopManager)),
		0, CLSCTX_ALL,
		uintptr(unsafe.Pointer(&iidVirtualDesktopManager)),
		uintptr(unsafe.Pointer(&obj)))
	if hr != 0 || obj == 0 {
		return nil, errVirtualDesktop
	}
	return &VirtualDesktopManager{obj: obj}, nil
}

// IsWindowOnCurrentDesktop reports whether the window is on the active
// virtual desktop.
func (m *VirtualDesktopManager) IsWindowOnCurrentDesktop(h uintptr) (bool, error) {
	var on int32
	// IVirtualDesktopManager::IsWindowOnCurrentVirtualDesktop is slot 3.
	if hr := comCall(m.obj, 3, h, uintptr(unsafe.Pointer(&on))); hr != 0 {
		return false, errVirtualDesktop
	}
	return on != 0, nil
}

func (m *VirtualDesktopManager) Close() {
	comRelease(m.obj)
}
