//go:build windows

package winapi

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"
)

var errHookInstall = errors.New("could not install win event hooks")

// WinEventFunc receives accessibility events. It runs on the hook
// thread and must return quickly.
type WinEventFunc func(event uint32, hwnd uintptr, objectID, childID int32)

var (
	hookSink     atomic.Pointer[WinEventFunc]
	hookCallback uintptr
	hookCbOnce   sync.Once
)

func winEventProc(_ uintptr, event uint32, hwnd uintptr, objectID, childID int32, _ uint32, _ uint32) uintptr {
	if fn := hookSink.Load(); fn != nil {
		(*fn)(event, hwnd, objectID, childID)
	}
	return 0
}

// WinEventHooks owns a set of out-of-context event hooks and the
// message pump thread that services them.
type WinEventHooks struct {
	threadID uint32
	done     chan struct{}
	err      error
	ready    chan struct{}
}

// StartWinEventHooks installs one hook per event id on a dedicated
// locked OS thread and pumps its message queue. Out-of-context hooks
// only deliver while the installing thread runs a message loop.
func StartWinEventHooks(events []uint32, fn WinEventFunc) (*WinEventHooks, error) {
	hookCbOnce.Do(func() {
		hookCallback = windows.NewCallback(func(hook uintptr, event uint32, hwnd uintptr, objectID, childID int32, thread, time uint32) uintptr {
			return winEventProc(hook, event, hwnd, objectID, childID, thread, time)
		})
	})
	if !hookSink.CompareAndSwap(nil, &fn) {
		return nil, errors.New("win event hooks already running")
	}

	h := &WinEventHooks{
		done:  make(chan struct{}),
		ready: make(chan struct{}),
	}
	go h.run(events)
	<-h.ready
	if h.err != nil {
		hookSink.Store(nil)
		return nil, h.err
	}
	return h, nil
}

func (h *WinEventHooks) run(events []uint32) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	h.threadID = windows.GetCurrentThreadId()

	hooks := make([]uintptr, 0, len(events))
	for _, ev := range events {
		hook, _, _ := procSetWinEventHook.Call(
			uintptr(ev), uintptr(ev),
			0, hookCallback, 0, 0,
			WINEVENT_OUTOFCONTEXT|WINEVENT_SKIPOWNPROCESS)
		if hook != 0 {
			hooks = append(hooks, hook)
		}
	}
	defer func() {
		for _, hook := range hooks {
			procUnhookWinEvent.Call(hook)
		}
	}()

	if len(hooks) == 0 {
		h.err = errHookInstall
		close(h.ready)
		return
	}
	close(h.ready)

	var msg Msg
	for {
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		// Zero on WM_QUIT, ^0 on error. Both end the pump.
		if r == 0 || r == ^uintptr(0) {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
	}
}

// Stop posts WM_QUIT to the pump thread and waits for it to exit.
func (h *WinEventHooks) Stop() {
	procPostThreadMessageW.Call(uintptr(h.threadID), WM_QUIT, 0, 0)
	<-h.done
	hookSink.Store(nil)
}
