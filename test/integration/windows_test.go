//go:build integration && windows
// +build integration,windows

package integration

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winpeek/winpeek/internal/capture"
	"github.com/winpeek/winpeek/internal/config"
	"github.com/winpeek/winpeek/internal/desktop"
	"github.com/winpeek/winpeek/internal/enumerate"
	"github.com/winpeek/winpeek/internal/events"
	"github.com/winpeek/winpeek/internal/focus"
	"github.com/winpeek/winpeek/internal/icon"
	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/logger"
	"github.com/winpeek/winpeek/internal/service"
	"github.com/winpeek/winpeek/internal/snapshot"
	"github.com/winpeek/winpeek/internal/window"
)

// newLiveService wires the production collaborators against the current
// desktop session. Requires an interactive session with at least one
// visible window.
func newLiveService(t *testing.T, withEvents bool) *service.Service {
	t.Helper()

	settings := config.Default()
	log := logger.NewNoOpLogger()

	var desktopFilter desktop.Filter
	if mgr, err := desktop.NewManager(); err == nil {
		desktopFilter = mgr
		t.Cleanup(mgr.Close)
	} else {
		desktopFilter = desktop.AllowAll{}
	}

	enum := enumerate.New(settings.Filter(), desktopFilter, log)
	icons := icon.NewCache(icon.NewSystemResolver(settings.Rules))
	thumbnails := capture.NewEngine(capture.DefaultStrategies(), snapshot.New(), icons, log)

	var engine *events.Engine
	if withEvents {
		health := events.NewHealth()
		engine = events.NewEngine(health, log,
			events.NewHookSource(health, enum, log),
			events.NewPoller(events.ListerFunc(enum.Poll)))
	}

	svc := service.New(service.Deps{
		Enumerator: enum,
		Thumbnails: thumbnails,
		Icons:      icons,
		Focuser:    focus.New(log),
		Events:     engine,
	}, settings, log)
	t.Cleanup(svc.Close)

	return svc
}

// TestIntegration_ListWindows lists the live session and checks every
// entry is well formed.
func TestIntegration_ListWindows(t *testing.T) {
	svc := newLiveService(t, false)

	listed, err := svc.ListWindows(false)
	require.NoError(t, err)

	if len(listed) == 0 {
		t.Skip("No eligible windows in this session")
	}

	for _, w := range listed {
		assert.NotZero(t, w.Handle, "Listed window should carry a handle")
		assert.NotEmpty(t, w.Title, "Listed window should carry a title")
		if w.Thumbnail != imaging.Empty {
			assert.True(t, strings.HasPrefix(w.Thumbnail, imaging.Prefix),
				"Thumbnail should be a PNG data URI")
		}
		if w.Icon != imaging.Empty {
			assert.True(t, strings.HasPrefix(w.Icon, imaging.Prefix),
				"Icon should be a PNG data URI")
		}
	}
}

// TestIntegration_CurrentDesktopSubset checks the scope contract: every
// window listed for the current desktop also appears when every virtual
// desktop is included.
func TestIntegration_CurrentDesktopSubset(t *testing.T) {
	svc := newLiveService(t, false)

	current, err := svc.ListWindows(false)
	require.NoError(t, err)

	all, err := svc.ListWindows(true)
	require.NoError(t, err)

	if len(current) == 0 {
		t.Skip("No eligible windows in this session")
	}

	handles := make(map[window.Handle]bool, len(all))
	for _, w := range all {
		handles[w.Handle] = true
	}
	for _, w := range current {
		assert.True(t, handles[w.Handle],
			"Window %#x (%s) listed for the current desktop should also appear in the all-desktops list",
			uintptr(w.Handle), w.Title)
	}
}

// TestIntegration_RefreshThumbnail captures twice and checks the forced
// refresh also yields a decodable image.
func TestIntegration_RefreshThumbnail(t *testing.T) {
	svc := newLiveService(t, false)

	listed, err := svc.ListWindows(false)
	require.NoError(t, err)
	if len(listed) == 0 {
		t.Skip("No eligible windows in this session")
	}

	uri, err := svc.RefreshThumbnail(listed[0].Handle)
	require.NoError(t, err)

	if uri != imaging.Empty {
		_, decodeErr := imaging.Decode(uri)
		assert.NoError(t, decodeErr, "Refreshed thumbnail should decode")
	}
}

// TestIntegration_FocusStaleHandle checks the error taxonomy against a
// handle no live window owns.
func TestIntegration_FocusStaleHandle(t *testing.T) {
	svc := newLiveService(t, false)

	_, err := svc.FocusWindow(0xdeadbeef)
	assert.ErrorIs(t, err, service.ErrInvalidIdentifier)
}

// TestIntegration_EventsStartStop subscribes, lets the producers settle,
// and checks StopEvents returns promptly.
func TestIntegration_EventsStartStop(t *testing.T) {
	svc := newLiveService(t, true)

	svc.SubscribeAll(func(events.Event) {})
	time.Sleep(500 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		svc.StopEvents()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("StopEvents did not return")
	}
}
