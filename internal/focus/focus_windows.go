//go:build windows

package focus

import (
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/winapi"
)

// systemOps drives the live window manager.
type systemOps struct{}

func (systemOps) IsIconic(h uintptr) bool { return winapi.IsIconic(h) }

func (systemOps) Restore(h uintptr) { winapi.ShowWindow(h, winapi.SW_RESTORE) }

func (systemOps) SetForeground(h uintptr) bool { return winapi.SetForegroundWindow(h) }

func (systemOps) Foreground() uintptr { return winapi.ForegroundWindow() }

func (systemOps) ThreadID(h uintptr) uint32 {
	tid, _ := winapi.ThreadProcessID(h)
	return tid
}

func (systemOps) AttachThreadInput(target, foreground uint32, attach bool) bool {
	return winapi.AttachThreadInput(target, foreground, attach)
}

func (systemOps) BringToTop(h uintptr) { winapi.BringWindowToTop(h) }

func (systemOps) SetActive(h uintptr) { winapi.SetActiveWindow(h) }

// New builds a Focuser over the live window manager.
func New(log logger.LoggerInterface) *Focuser {
	return newFocuser(systemOps{}, log)
}
