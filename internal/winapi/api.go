//go:build windows

// Package winapi wraps the raw OS calls behind typed helpers. Everything
// here is a thin translation layer; policy lives in the callers.
package winapi

import "golang.org/x/sys/windows"

var (
	user32                       = windows.NewLazySystemDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowLongPtrW        = user32.NewProc("GetWindowLongPtrW")
	procGetClassLongPtrW         = user32.NewProc("GetClassLongPtrW")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetWindowPlacement       = user32.NewProc("GetWindowPlacement")
	procGetLayeredWindowAttribs  = user32.NewProc("GetLayeredWindowAttributes")
	procGetWindow                = user32.NewProc("GetWindow")
	procGetAncestor              = user32.NewProc("GetAncestor")
	procGetLastActivePopup       = user32.NewProc("GetLastActivePopup")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procIsIconic                 = user32.NewProc("IsIconic")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procBringWindowToTop         = user32.NewProc("BringWindowToTop")
	procSetActiveWindow          = user32.NewProc("SetActiveWindow")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
	procShowWindow               = user32.NewProc("ShowWindow")
	procSetWindowPos             = user32.NewProc("SetWindowPos")
	procUpdateWindow             = user32.NewProc("UpdateWindow")
	procSendMessageTimeoutW      = user32.NewProc("SendMessageTimeoutW")
	procRegisterClassExW         = user32.NewProc("RegisterClassExW")
	procCreateWindowExW          = user32.NewProc("CreateWindowExW")
	procDestroyWindow            = user32.NewProc("DestroyWindow")
	procDefWindowProcW           = user32.NewProc("DefWindowProcW")
	procGetDC                    = user32.NewProc("GetDC")
	procReleaseDC                = user32.NewProc("ReleaseDC")
	procFillRect                 = user32.NewProc("FillRect")
	procGetSysColorBrush         = user32.NewProc("GetSysColorBrush")
	procPrintWindow              = user32.NewProc("PrintWindow")
	procDrawIconEx               = user32.NewProc("DrawIconEx")
	procDestroyIcon              = user32.NewProc("DestroyIcon")
	procSetWinEventHook          = user32.NewProc("SetWinEventHook")
	procUnhookWinEvent           = user32.NewProc("UnhookWinEvent")
	procGetMessageW              = user32.NewProc("GetMessageW")
	procTranslateMessage         = user32.NewProc("TranslateMessage")
	procDispatchMessageW         = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW       = user32.NewProc("PostThreadMessageW")

	gdi32                    = windows.NewLazySystemDLL("gdi32.dll")
	procCreateCompatibleDC   = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC             = gdi32.NewProc("DeleteDC")
	procCreateCompatibleBmp  = gdi32.NewProc("CreateCompatibleBitmap")
	procSelectObject         = gdi32.NewProc("SelectObject")
	procDeleteObject         = gdi32.NewProc("DeleteObject")
	procBitBlt               = gdi32.NewProc("BitBlt")
	procStretchBlt           = gdi32.NewProc("StretchBlt")
	procSetStretchBltMode    = gdi32.NewProc("SetStretchBltMode")
	procGetDIBits            = gdi32.NewProc("GetDIBits")
	procGetCurrentObject     = gdi32.NewProc("GetCurrentObject")
	procGetObjectW           = gdi32.NewProc("GetObjectW")

	dwmapi                        = windows.NewLazySystemDLL("dwmapi.dll")
	procDwmGetWindowAttribute     = dwmapi.NewProc("DwmGetWindowAttribute")
	procDwmRegisterThumbnail      = dwmapi.NewProc("DwmRegisterThumbnail")
	procDwmUnregisterThumbnail    = dwmapi.NewProc("DwmUnregisterThumbnail")
	procDwmQueryThumbnailSrcSize  = dwmapi.NewProc("DwmQueryThumbnailSourceSize")
	procDwmUpdateThumbnailProps   = dwmapi.NewProc("DwmUpdateThumbnailProperties")
	procDwmFlush                  = dwmapi.NewProc("DwmFlush")

	shell32                         = windows.NewLazySystemDLL("shell32.dll")
	procExtractIconExW              = shell32.NewProc("ExtractIconExW")
	procSHGetPropertyStoreForWindow = shell32.NewProc("SHGetPropertyStoreForWindow")
	procSHCreateItemFromParsingName = shell32.NewProc("SHCreateItemFromParsingName")

	ole32                  = windows.NewLazySystemDLL("ole32.dll")
	procCoInitializeEx     = ole32.NewProc("CoInitializeEx")
	procCoUninitialize     = ole32.NewProc("CoUninitialize")
	procCoCreateInstance   = ole32.NewProc("CoCreateInstance")
	procPropVariantClear   = ole32.NewProc("PropVariantClear")

	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	combase                    = windows.NewLazySystemDLL("combase.dll")
	procRoGetActivationFactory = combase.NewProc("RoGetActivationFactory")
	procWindowsCreateString    = combase.NewProc("WindowsCreateString")
	procWindowsDeleteString    = combase.NewProc("WindowsDeleteString")
)

// Window style and state constants.
const (
	GWL_STYLE   = ^uintptr(15) // -16
	GWL_EXSTYLE = ^uintptr(19) // -20

	WS_CHILD = 0x40000000
	WS_POPUP = 0x80000000

	WS_EX_TOOLWINDOW = 0x00000080
	WS_EX_APPWINDOW  = 0x00040000
	WS_EX_LAYERED    = 0x00080000
	WS_EX_NOACTIVATE = 0x08000000

	LWA_ALPHA = 0x00000002

	GW_HWNDNEXT = 2
	GW_OWNER    = 4
	GW_CHILD    = 5

	GA_ROOT      = 2
	GA_ROOTOWNER = 3

	SW_HIDE           = 0
	SW_SHOWNOACTIVATE = 4
	SW_RESTORE        = 9

	SWP_NOACTIVATE = 0x0010

	HWND_BOTTOM = 1

	DWMWA_CLOAKED = 14

	WM_GETICON  = 0x007F
	ICON_SMALL  = 0
	ICON_BIG    = 1
	ICON_SMALL2 = 2

	GCLP_HICON   = ^uintptr(13) // -14
	GCLP_HICONSM = ^uintptr(33) // -34

	SMTO_ABORTIFHUNG = 0x0002

	DI_NORMAL = 0x0003

	COLOR_WINDOW = 5

	CS_VREDRAW = 0x0001
	CS_HREDRAW = 0x0002

	WM_ERASEBKGND = 0x0014
	WM_QUIT       = 0x0012
)

// GDI constants.
const (
	SRCCOPY        = 0x00CC0020
	HALFTONE       = 4
	BI_RGB         = 0
	DIB_RGB_COLORS = 0
	OBJ_BITMAP     = 7

	PW_CLIENTONLY       = 0x00000001
	PW_RENDERFULLCONTENT = 0x00000002
)

// DWM thumbnail property flags.
const (
	DWM_TNP_RECTDESTINATION      = 0x00000001
	DWM_TNP_VISIBLE              = 0x00000008
	DWM_TNP_SOURCECLIENTAREAONLY = 0x00000010
)

// WinEvent constants.
const (
	EVENT_SYSTEM_FOREGROUND    = 0x0003
	EVENT_SYSTEM_MINIMIZESTART = 0x0016
	EVENT_SYSTEM_MINIMIZEEND   = 0x0017
	EVENT_OBJECT_CREATE        = 0x8000
	EVENT_OBJECT_DESTROY       = 0x8001
	EVENT_OBJECT_SHOW          = 0x8002
	EVENT_OBJECT_HIDE          = 0x8003
	EVENT_OBJECT_STATECHANGE   = 0x800A
	EVENT_OBJECT_CLOAKED       = 0x8017
	EVENT_OBJECT_UNCLOAKED     = 0x8018

	WINEVENT_OUTOFCONTEXT   = 0x0000
	WINEVENT_SKIPOWNPROCESS = 0x0002

	OBJID_WINDOW = 0
)

// OBJID_CLIENT is a negative object identifier.
var OBJID_CLIENT = int32(-4)

// Shell image factory flags.
const (
	SIIGBF_RESIZETOFIT  = 0x00000000
	SIIGBF_BIGGERSIZEOK = 0x00000001

	VT_LPWSTR = 31

	CLSCTX_ALL = 0x17
)
