//go:build windows

package winapi

import (
	"errors"
	"image"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	errNoAppID      = errors.New("window carries no application user model id")
	errShellImage   = errors.New("shell image factory returned no bitmap")
	errComUnusable  = errors.New("com call failed")
)

var (
	iidPropertyStore         = guid("{886D8EEB-8CF2-4446-8D02-CDBA1DBDCF99}")
	iidShellItemImageFactory = guid("{BCC18B79-BA16-442F-80C4-8A59C30C463B}")
	pkeyAppUserModelID       = PropertyKey{
		FmtID: guid("{9F4C2855-9F79-4B39-A8D0-E1D42DE1D5F3}"),
		PID:   5,
	}
)

func guid(s string) windows.GUID {
	g, err := windows.GUIDFromString(s)
	if err != nil {
		panic("winapi: bad GUID literal " + s)
	}
	return g
}

// comCall invokes a method through a raw COM vtable slot.
func comCall(obj uintptr, slot int, args ...uintptr) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	method := *(*uintptr)(unsafe.Pointer(vtbl + uintptr(slot)*unsafe.Sizeof(uintptr(0))))
	hr, _, _ := syscall.SyscallN(method, append([]uintptr{obj}, args...)...)
	return hr
}

func comRelease(obj uintptr) {
	comCall(obj, 2)
}

// CoInitialize enters the single-threaded apartment on the calling
// thread. Pair with CoUninitialize. S_FALSE (already initialized) is
// not an error.
func CoInitialize() error {
	hr, _, _ := procCoInitializeEx.Call(0, 0x2 /* COINIT_APARTMENTTHREADED */)
	if int32(hr) < 0 {
		return errComUnusable
	}
	return nil
}

func CoUninitialize() {
	procCoUninitialize.Call()
}

// AppUserModelID reads the explicit application identity a window has
// published, if any. Packaged apps always carry one.
func AppUserModelID(h uintptr) (string, error) {
	var store uintptr
	hr, _, _ := procSHGetPropertyStoreForWindow.Call(h,
		uintptr(unsafe.Pointer(&iidPropertyStore)),
		uintptr(unsafe.Pointer(&store)))
	if hr != 0 || store == 0 {
		return "", errNoAppID
	}
	defer comRelease(store)
	var pv PropVariant
	// IPropertyStore::GetValue is vtable slot 5.
	if hr := comCall(store, 5,
		uintptr(unsafe.Pointer(&pkeyAppUserModelID)),
		uintptr(unsafe.Pointer(&pv))); hr != 0 {
		return "", errNoAppID
	}
	defer procPropVariantClear.Call(uintptr(unsafe.Pointer(&pv)))
	if pv.VT != VT_LPWSTR || pv.Val == 0 {
		return "", errNoAppID
	}
	id := windows.UTF16PtrToString((*uint16)(unsafe.Pointer(pv.Val)))
	if id == "" {
		return "", errNoAppID
	}
	return id, nil
}

// AppIcon renders the store logo of a packaged application by asking
// the shell's image factory for the apps-folder item.
func AppIcon(appUserModelID string, size int) (*image.RGBA, error) {
	path, err := windows.UTF16PtrFromString(`shell:Appsfolder\` + appUserModelID)
	if err != nil {
		return nil, err
	}
	var factory uintptr
	hr, _, _ := procSHCreateItemFromParsingName.Call(
		uintptr(unsafe.Pointer(path)), 0,
		uintptr(unsafe.Pointer(&iidShellItemImageFactory)),
		uintptr(unsafe.Pointer(&factory)))
	if hr != 0 || factory == 0 {
		return nil, errShellImage
	}
	defer comRelease(factory)
	var bmp uintptr
	sz := Size{CX: int32(size), CY: int32(size)}
	szArg := uintptr(uint64(uint32(sz.CX)) | uint64(uint32(sz.CY))<<32)
	// IShellItemImageFactory::GetImage is vtable slot 3. SIZE is passed
	// by value, packed into a single register on amd64/arm64.
	if hr := comCall(factory, 3, szArg,
		SIIGBF_RESIZETOFIT|SIIGBF_BIGGERSIZEOK,
		uintptr(unsafe.Pointer(&bmp))); hr != 0 || bmp == 0 {
		return nil, errShellImage
	}
	defer procDeleteObject.Call(bmp)
	screen := ScreenDC()
	defer ReleaseDC(0, screen)
	var info Bitmap
	if r, _, _ := procGetObjectW.Call(bmp, unsafe.Sizeof(info), uintptr(unsafe.Pointer(&info))); r == 0 {
		return nil, errShellImage
	}
	return BitmapImage(screen, bmp, int(info.Width), int(info.Height))
}
