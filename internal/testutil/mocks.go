package testutil

import (
	"sync"

	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/window"
)

// MockEnumerator serves a fixed window set and records scope arguments.
type MockEnumerator struct {
	mu             sync.Mutex
	Windows        []window.Info
	EnumerateErr   error
	EnumerateCalls []bool
}

func NewMockEnumerator(windows ...window.Info) *MockEnumerator {
	return &MockEnumerator{Windows: windows}
}

func (m *MockEnumerator) Enumerate(allDesktops bool) ([]window.Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnumerateCalls = append(m.EnumerateCalls, allDesktops)
	if m.EnumerateErr != nil {
		return nil, m.EnumerateErr
	}

	out := make([]window.Info, len(m.Windows))
	copy(out, m.Windows)
	return out, nil
}

func (m *MockEnumerator) Probe(h window.Handle) (window.Info, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, w := range m.Windows {
		if w.Handle == h {
			return w, true
		}
	}
	return window.Info{}, false
}

// SetWindows replaces the served window set.
func (m *MockEnumerator) SetWindows(windows []window.Info) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Windows = windows
}

// MockThumbnailer returns a fixed data URI and counts captures.
type MockThumbnailer struct {
	mu           sync.Mutex
	Result       string
	ThumbCalls   []window.Handle
	RefreshCalls []window.Handle
	ForgetCalls  []window.Handle
}

func NewMockThumbnailer(result string) *MockThumbnailer {
	return &MockThumbnailer{Result: result}
}

func (m *MockThumbnailer) Thumbnail(info window.Info, _, _ int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ThumbCalls = append(m.ThumbCalls, info.Handle)
	return m.Result
}

func (m *MockThumbnailer) Refresh(info window.Info, _, _ int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshCalls = append(m.RefreshCalls, info.Handle)
	return m.Result
}

func (m *MockThumbnailer) Forget(h window.Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ForgetCalls = append(m.ForgetCalls, h)
}

// MockIconProvider returns a fixed icon and records lookups.
type MockIconProvider struct {
	mu     sync.Mutex
	Result string
	Calls  []window.Handle
}

func NewMockIconProvider(result string) *MockIconProvider {
	if result == "" {
		result = imaging.Empty
	}
	return &MockIconProvider{Result: result}
}

func (m *MockIconProvider) Get(h window.Handle, _ string, _ int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, h)
	return m.Result
}

// MockFocuser records focus requests.
type MockFocuser struct {
	mu     sync.Mutex
	Result bool
	Calls  []window.Handle
}

func NewMockFocuser() *MockFocuser {
	return &MockFocuser{Result: true}
}

func (m *MockFocuser) Focus(h window.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, h)
	return m.Result
}

// FocusCalls returns a copy of the recorded focus requests.
func (m *MockFocuser) FocusCalls() []window.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]window.Handle, len(m.Calls))
	copy(out, m.Calls)
	return out
}
