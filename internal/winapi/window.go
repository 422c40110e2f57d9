//go:build windows

package winapi

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// IsWindow reports whether the handle still refers to a live window.
func IsWindow(h uintptr) bool {
	r, _, _ := procIsWindow.Call(h)
	return r != 0
}

func IsWindowVisible(h uintptr) bool {
	r, _, _ := procIsWindowVisible.Call(h)
	return r != 0
}

func IsIconic(h uintptr) bool {
	r, _, _ := procIsIconic.Call(h)
	return r != 0
}

// WindowText returns the caption of a window, or "" when it has none.
func WindowText(h uintptr) string {
	n, _, _ := procGetWindowTextLengthW.Call(h)
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	r, _, _ := procGetWindowTextW.Call(h, uintptr(unsafe.Pointer(&buf[0])), n+1)
	if r == 0 {
		return ""
	}
	return windows.UTF16ToString(buf)
}

func ClassName(h uintptr) string {
	var buf [256]uint16
	r, _, _ := procGetClassNameW.Call(h, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return ""
	}
	return windows.UTF16ToString(buf[:r])
}

// WindowStyles returns the style and extended style bits.
func WindowStyles(h uintptr) (style, exStyle uintptr) {
	style, _, _ = procGetWindowLongPtrW.Call(h, GWL_STYLE)
	exStyle, _, _ = procGetWindowLongPtrW.Call(h, GWL_EXSTYLE)
	return style, exStyle
}

// WindowRect returns the current on-screen bounds.
func WindowRect(h uintptr) (Rect, bool) {
	var rc Rect
	r, _, _ := procGetWindowRect.Call(h, uintptr(unsafe.Pointer(&rc)))
	return rc, r != 0
}

// RestoredRect returns the non-minimized placement rectangle. Useful
// while a window is iconic and its live rect is off-screen.
func RestoredRect(h uintptr) (Rect, bool) {
	var wp WindowPlacement
	wp.Length = uint32(unsafe.Sizeof(wp))
	r, _, _ := procGetWindowPlacement.Call(h, uintptr(unsafe.Pointer(&wp)))
	return wp.RcNormalPosition, r != 0
}

// LayeredZeroAlpha reports whether a layered window uses per-window
// alpha and is fully transparent.
func LayeredZeroAlpha(h uintptr) bool {
	var key uint32
	var alpha byte
	var flags uint32
	r, _, _ := procGetLayeredWindowAttribs.Call(h,
		uintptr(unsafe.Pointer(&key)),
		uintptr(unsafe.Pointer(&alpha)),
		uintptr(unsafe.Pointer(&flags)))
	if r == 0 {
		return false
	}
	return flags&LWA_ALPHA != 0 && alpha == 0
}

// IsCloaked reports whether the compositor hides the window, which is
// how suspended packaged apps and off-desktop windows present.
func IsCloaked(h uintptr) bool {
	var cloaked uint32
	hr, _, _ := procDwmGetWindowAttribute.Call(h, DWMWA_CLOAKED,
		uintptr(unsafe.Pointer(&cloaked)), unsafe.Sizeof(cloaked))
	return hr == 0 && cloaked != 0
}

func Owner(h uintptr) uintptr {
	r, _, _ := procGetWindow.Call(h, GW_OWNER)
	return r
}

func FirstChild(h uintptr) uintptr {
	r, _, _ := procGetWindow.Call(h, GW_CHILD)
	return r
}

func NextSibling(h uintptr) uintptr {
	r, _, _ := procGetWindow.Call(h, GW_HWNDNEXT)
	return r
}

func Ancestor(h uintptr, flag uintptr) uintptr {
	r, _, _ := procGetAncestor.Call(h, flag)
	return r
}

func LastActivePopup(h uintptr) uintptr {
	r, _, _ := procGetLastActivePopup.Call(h)
	return r
}

func ForegroundWindow() uintptr {
	r, _, _ := procGetForegroundWindow.Call()
	return r
}

// FirstChildTitle walks the immediate children and returns the first
// non-empty caption. Hosted app frames keep their caption on a child.
func FirstChildTitle(h uintptr) string {
	for c := FirstChild(h); c != 0; c = NextSibling(c) {
		if t := WindowText(c); t != "" {
			return t
		}
	}
	return ""
}

// HasVisibleChild reports whether any immediate child is visible.
func HasVisibleChild(h uintptr) bool {
	for c := FirstChild(h); c != 0; c = NextSibling(c) {
		if IsWindowVisible(c) {
			return true
		}
	}
	return false
}

// ThreadProcessID returns the owning thread and process of a window.
func ThreadProcessID(h uintptr) (tid, pid uint32) {
	r, _, _ := procGetWindowThreadProcessId.Call(h, uintptr(unsafe.Pointer(&pid)))
	return uint32(r), pid
}

// ExecutablePath resolves the full image path of the process owning the
// window. Access to protected processes is limited query only.
func ExecutablePath(h uintptr) (string, error) {
	_, pid := ThreadProcessID(h)
	if pid == 0 {
		return "", windows.ERROR_INVALID_WINDOW_HANDLE
	}
	proc, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(proc)
	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(proc, 0, &buf[0], &size); err != nil {
		return "", err
	}
	return windows.UTF16ToString(buf[:size]), nil
}

var (
	enumMu       sync.Mutex
	enumSink     func(h uintptr) bool
	enumCallback uintptr
	enumOnce     sync.Once
)

// EnumTopLevel invokes fn for every top-level window in z-order. Return
// false from fn to stop early. The native callback is created once and
// reused because callback slots are a finite process resource.
func EnumTopLevel(fn func(h uintptr) bool) error {
	enumOnce.Do(func() {
		enumCallback = windows.NewCallback(func(h, _ uintptr) uintptr {
			if enumSink != nil && !enumSink(h) {
				return 0
			}
			return 1
		})
	})
	enumMu.Lock()
	defer enumMu.Unlock()
	enumSink = fn
	defer func() { enumSink = nil }()
	r, _, err := procEnumWindows.Call(enumCallback, 0)
	// A stopped enumeration returns FALSE without a meaningful error.
	if r == 0 && err != windows.ERROR_SUCCESS {
		return err
	}
	return nil
}

// SendMessageTimeout sends a window message but abandons hung targets
// instead of blocking the caller.
func SendMessageTimeout(h uintptr, msg uint32, wParam, lParam uintptr, timeoutMS uint32) (uintptr, bool) {
	var result uintptr
	r, _, _ := procSendMessageTimeoutW.Call(h, uintptr(msg), wParam, lParam,
		SMTO_ABORTIFHUNG, uintptr(timeoutMS), uintptr(unsafe.Pointer(&result)))
	return result, r != 0
}

func ClassLongPtr(h uintptr, index uintptr) uintptr {
	r, _, _ := procGetClassLongPtrW.Call(h, index)
	return r
}

func ShowWindow(h uintptr, cmd uintptr) {
	procShowWindow.Call(h, cmd)
}

func SetForegroundWindow(h uintptr) bool {
	r, _, _ := procSetForegroundWindow.Call(h)
	return r != 0
}

func BringWindowToTop(h uintptr) bool {
	r, _, _ := procBringWindowToTop.Call(h)
	return r != 0
}

func SetActiveWindow(h uintptr) {
	procSetActiveWindow.Call(h)
}

// AttachThreadInput ties or unties the input queues of two threads.
func AttachThreadInput(a, b uint32, attach bool) bool {
	var flag uintptr
	if attach {
		flag = 1
	}
	r, _, _ := procAttachThreadInput.Call(uintptr(a), uintptr(b), flag)
	return r != 0
}
