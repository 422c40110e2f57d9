//go:build windows

package desktop

import (
	"sync"

	"github.com/winpeek/winpeek/internal/winapi"
	"github.com/winpeek/winpeek/internal/window"
)

// Manager answers desktop membership through the shell's virtual
// desktop service. Construction can fail on stripped-down sessions
// (server core, some remote shells); callers should fall back to
// AllowAll in that case.
type Manager struct {
	mu  sync.Mutex
	vdm *winapi.VirtualDesktopManager
}

func NewManager() (*Manager, error) {
	if err := winapi.CoInitialize(); err != nil {
		return nil, err
	}
	vdm, err := winapi.NewVirtualDesktopManager()
	if err != nil {
		winapi.CoUninitialize()
		return nil, err
	}
	return &Manager{vdm: vdm}, nil
}

func (m *Manager) OnCurrent(h window.Handle) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vdm.IsWindowOnCurrentDesktop(uintptr(h))
}

func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.vdm != nil {
		m.vdm.Close()
		m.vdm = nil
		winapi.CoUninitialize()
	}
}
