//go:build windows

package winapi

import "golang.org/x/sys/windows"

type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type Point struct {
	X int32
	Y int32
}

type Size struct {
	CX int32
	CY int32
}

type Msg struct {
	HWND    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      Point
}

type WindowPlacement struct {
	Length           uint32
	Flags            uint32
	ShowCmd          uint32
	PtMinPosition    Point
	PtMaxPosition    Point
	RcNormalPosition Rect
	RcDevice         Rect
}

type WndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   uintptr
	Icon       uintptr
	Cursor     uintptr
	Background uintptr
	MenuName   *uint16
	ClassName  *uint16
	IconSm     uintptr
}

type BitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

type BitmapInfo struct {
	Header BitmapInfoHeader
	Colors [1]uint32
}

type Bitmap struct {
	Type       int32
	Width      int32
	Height     int32
	WidthBytes int32
	Planes     uint16
	BitsPixel  uint16
	Bits       uintptr
}

type IconInfo struct {
	FIcon    int32
	XHotspot uint32
	YHotspot uint32
	HbmMask  uintptr
	HbmColor uintptr
}

type ThumbnailProperties struct {
	Flags                uint32
	Destination          Rect
	Source               Rect
	Opacity              byte
	Visible              int32
	SourceClientAreaOnly int32
}

type PropertyKey struct {
	FmtID windows.GUID
	PID   uint32
}

// PropVariant is the fixed-size prefix of the native PROPVARIANT. Only
// the VT_LPWSTR payload is consumed here.
type PropVariant struct {
	VT       uint16
	Reserved [6]byte
	Val      uintptr
	Val2     uintptr
}
