// Package focus brings windows to the foreground, working around the
// foreground lock that stops background processes from stealing focus.
package focus

import (
	"log/slog"
	"time"

	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/timeouts"
	"github.com/winpeek/winpeek/internal/window"
)

// winOps is the window manager surface Focus drives. The live
// implementation sits behind the windows build tag.
type winOps interface {
	IsIconic(h uintptr) bool
	Restore(h uintptr)
	SetForeground(h uintptr) bool
	Foreground() uintptr
	ThreadID(h uintptr) uint32
	AttachThreadInput(target, foreground uint32, attach bool) bool
	BringToTop(h uintptr)
	SetActive(h uintptr)
}

type Focuser struct {
	ops         winOps
	log         logger.LoggerInterface
	verifyDelay time.Duration
}

func newFocuser(ops winOps, log logger.LoggerInterface) *Focuser {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Focuser{
		ops:         ops,
		log:         log,
		verifyDelay: timeouts.FocusVerificationDelay,
	}
}

// Focus restores the window if minimized and brings it to the
// foreground, falling back to the AttachThreadInput technique when the
// standard call is refused.
func (f *Focuser) Focus(h window.Handle) bool {
	hwnd := uintptr(h)
	if f.ops.IsIconic(hwnd) {
		f.ops.Restore(hwnd)
		f.log.Debug("Restored minimized window", slog.Uint64("hwnd", uint64(hwnd)))
	}

	if f.ops.SetForeground(hwnd) {
		f.log.Debug("SetForegroundWindow succeeded (standard)")
		return f.verifyForeground(hwnd)
	}

	f.log.Debug("Standard SetForegroundWindow failed, trying AttachThreadInput technique")

	fgHwnd := f.ops.Foreground()
	if fgHwnd == 0 || fgHwnd == hwnd {
		f.log.Debug("No foreground window or already focused")
		return true
	}

	fgThreadID := f.ops.ThreadID(fgHwnd)
	targetThreadID := f.ops.ThreadID(hwnd)
	if fgThreadID == 0 || targetThreadID == 0 {
		f.log.Warn("Could not get thread IDs",
			slog.Uint64("fgThreadID", uint64(fgThreadID)),
			slog.Uint64("targetThreadID", uint64(targetThreadID)))
		return false
	}

	if !f.ops.AttachThreadInput(targetThreadID, fgThreadID, true) {
		f.log.Warn("AttachThreadInput failed")
		return false
	}

	success := f.ops.SetForeground(hwnd)
	if success {
		f.ops.BringToTop(hwnd)
		f.ops.SetActive(hwnd)
	}

	if !f.ops.AttachThreadInput(targetThreadID, fgThreadID, false) {
		f.log.Warn("Failed to detach threads")
	}

	if success {
		f.log.Debug("SetForegroundWindow succeeded (with AttachThreadInput)")
		return f.verifyForeground(hwnd)
	}

	f.log.Warn("SetForegroundWindow still failed after AttachThreadInput")
	return false
}

// verifyForeground confirms the window actually reached the foreground.
func (f *Focuser) verifyForeground(hwnd uintptr) bool {
	time.Sleep(f.verifyDelay)

	fgHwnd := f.ops.Foreground()
	if fgHwnd == hwnd {
		f.log.Debug("Window confirmed in foreground")
		return true
	}

	f.log.Warn("Different window in foreground",
		slog.Uint64("expected", uint64(hwnd)),
		slog.Uint64("got", uint64(fgHwnd)))

	return false
}
