//go:build windows

package winapi

import (
	"errors"
	"unsafe"
)

var errDWM = errors.New("dwm thumbnail operation failed")

// Thumbnail is a live compositor redirection of a source window onto a
// host window. It keeps rendering while the source is minimized, which
// is the only supported way to see minimized content.
type Thumbnail struct {
	handle uintptr
}

// RegisterThumbnail redirects source onto host.
func RegisterThumbnail(host, source uintptr) (*Thumbnail, error) {
	var th uintptr
	hr, _, _ := procDwmRegisterThumbnail.Call(host, source, uintptr(unsafe.Pointer(&th)))
	if hr != 0 || th == 0 {
		return nil, errDWM
	}
	return &Thumbnail{handle: th}, nil
}

// SourceSize queries the native size of the redirected content.
func (t *Thumbnail) SourceSize() (int, int, error) {
	var sz Size
	hr, _, _ := procDwmQueryThumbnailSrcSize.Call(t.handle, uintptr(unsafe.Pointer(&sz)))
	if hr != 0 || sz.CX <= 0 || sz.CY <= 0 {
		return 0, 0, errDWM
	}
	return int(sz.CX), int(sz.CY), nil
}

// Show positions the redirection inside the host client area.
func (t *Thumbnail) Show(dest Rect) error {
	props := ThumbnailProperties{
		Flags:       DWM_TNP_RECTDESTINATION | DWM_TNP_VISIBLE | DWM_TNP_SOURCECLIENTAREAONLY,
		Destination: dest,
		Visible:     1,
	}
	hr, _, _ := procDwmUpdateThumbnailProps.Call(t.handle, uintptr(unsafe.Pointer(&props)))
	if hr != 0 {
		return errDWM
	}
	return nil
}

func (t *Thumbnail) Close() {
	procDwmUnregisterThumbnail.Call(t.handle)
}

// DwmFlush waits for the compositor to finish the pending frame so a
// freshly shown thumbnail has actually been drawn before readback.
func DwmFlush() {
	procDwmFlush.Call()
}
