package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/winpeek/winpeek/internal/config"
	"github.com/winpeek/winpeek/internal/imaging"
	"github.com/winpeek/winpeek/internal/testutil"
	"github.com/winpeek/winpeek/internal/window"
)

func testWindows() []window.Info {
	return []window.Info{
		{Handle: 0x1001, Title: "Editor", ExecutablePath: `C:\apps\editor.exe`, IsVisible: true},
		{Handle: 0x1002, Title: "Terminal", ExecutablePath: `C:\apps\term.exe`, IsVisible: true},
		{Handle: 0x1003, Title: "Browser", ExecutablePath: `C:\apps\browser.exe`, IsVisible: true},
	}
}

func newTestService(enum *testutil.MockEnumerator, thumbs *testutil.MockThumbnailer, icons *testutil.MockIconProvider, focuser *testutil.MockFocuser) *Service {
	return New(Deps{
		Enumerator: enum,
		Thumbnails: thumbs,
		Icons:      icons,
		Focuser:    focuser,
	}, config.Default(), nil)
}

func TestListWindows(t *testing.T) {
	enum := testutil.NewMockEnumerator(testWindows()...)
	thumbs := testutil.NewMockThumbnailer(testutil.AdequateDataURI())
	icons := testutil.NewMockIconProvider("")
	svc := newTestService(enum, thumbs, icons, testutil.NewMockFocuser())

	listed, err := svc.ListWindows(false)

	require.NoError(t, err)
	require.Len(t, listed, 3)

	// Order follows enumeration order even though capture runs concurrently.
	assert.Equal(t, window.Handle(0x1001), listed[0].Handle)
	assert.Equal(t, "Editor", listed[0].Title)
	assert.Equal(t, `C:\apps\editor.exe`, listed[0].ExecutablePath)
	assert.True(t, listed[0].IsVisible)
	assert.Equal(t, testutil.AdequateDataURI(), listed[0].Thumbnail)
	assert.Equal(t, imaging.Empty, listed[0].Icon)

	assert.Equal(t, window.Handle(0x1002), listed[1].Handle)
	assert.Equal(t, window.Handle(0x1003), listed[2].Handle)

	assert.Equal(t, []bool{false}, enum.EnumerateCalls)
	assert.Len(t, icons.Calls, 3)
}

func TestListWindowsScope(t *testing.T) {
	enum := testutil.NewMockEnumerator()
	svc := newTestService(enum, testutil.NewMockThumbnailer(""), testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	_, err := svc.ListWindows(true)

	require.NoError(t, err)
	assert.Equal(t, []bool{true}, enum.EnumerateCalls)
}

func TestListWindowsEnumerationError(t *testing.T) {
	enum := testutil.NewMockEnumerator()
	enum.EnumerateErr = errors.New("access denied")
	svc := newTestService(enum, testutil.NewMockThumbnailer(""), testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	listed, err := svc.ListWindows(false)

	require.Error(t, err)
	assert.Nil(t, listed)
	assert.ErrorContains(t, err, "enumerate windows")
}

func TestListWindowsDegradesPerWindow(t *testing.T) {
	// Empty thumbnail and icon results stand in for failed capture; the
	// listing still succeeds with the degraded fields in place.
	enum := testutil.NewMockEnumerator(testWindows()...)
	svc := newTestService(enum, testutil.NewMockThumbnailer(imaging.Empty), testutil.NewMockIconProvider(imaging.Empty), testutil.NewMockFocuser())

	listed, err := svc.ListWindows(false)

	require.NoError(t, err)
	require.Len(t, listed, 3)
	for _, w := range listed {
		assert.Equal(t, imaging.Empty, w.Thumbnail)
		assert.Equal(t, imaging.Empty, w.Icon)
		assert.NotEmpty(t, w.Title)
	}
}

func TestFocusWindow(t *testing.T) {
	tests := []struct {
		name      string
		handle    window.Handle
		focusOK   bool
		wantOK    bool
		wantErr   error
		wantCalls int
	}{
		{
			name:      "known handle confirmed",
			handle:    0x1001,
			focusOK:   true,
			wantOK:    true,
			wantCalls: 1,
		},
		{
			name:      "known handle not confirmed",
			handle:    0x1002,
			focusOK:   false,
			wantOK:    false,
			wantCalls: 1,
		},
		{
			name:    "stale handle",
			handle:  0xdead,
			wantErr: ErrInvalidIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enum := testutil.NewMockEnumerator(testWindows()...)
			focuser := testutil.NewMockFocuser()
			focuser.Result = tt.focusOK
			svc := newTestService(enum, testutil.NewMockThumbnailer(""), testutil.NewMockIconProvider(""), focuser)

			ok, err := svc.FocusWindow(tt.handle)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, ok)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOK, ok)
			}
			assert.Len(t, focuser.FocusCalls(), tt.wantCalls)
		})
	}
}

func TestRefreshThumbnail(t *testing.T) {
	enum := testutil.NewMockEnumerator(testWindows()...)
	thumbs := testutil.NewMockThumbnailer(testutil.AdequateDataURI())
	svc := newTestService(enum, thumbs, testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	uri, err := svc.RefreshThumbnail(0x1001)

	require.NoError(t, err)
	assert.Equal(t, testutil.AdequateDataURI(), uri)
	assert.Equal(t, []window.Handle{0x1001}, thumbs.RefreshCalls)
	assert.Empty(t, thumbs.ThumbCalls)
}

func TestRefreshThumbnailStaleHandle(t *testing.T) {
	enum := testutil.NewMockEnumerator(testWindows()...)
	thumbs := testutil.NewMockThumbnailer("")
	svc := newTestService(enum, thumbs, testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	uri, err := svc.RefreshThumbnail(0xbeef)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.Empty(t, uri)
	assert.Empty(t, thumbs.RefreshCalls)
}

func TestListWindowsAsync(t *testing.T) {
	enum := testutil.NewMockEnumerator(testWindows()...)
	svc := newTestService(enum, testutil.NewMockThumbnailer(""), testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	fut := svc.ListWindowsAsync(false)

	select {
	case <-fut.Done():
	case <-time.After(time.Second):
		t.Fatal("listing future never resolved")
	}

	listed, err := fut.Value(), fut.Err()
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestFocusWindowAsyncStaleHandle(t *testing.T) {
	enum := testutil.NewMockEnumerator(testWindows()...)
	svc := newTestService(enum, testutil.NewMockThumbnailer(""), testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	fut := svc.FocusWindowAsync(0xdead)

	ok, err := fut.Await(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.False(t, ok)
}

func TestRefreshThumbnailAsync(t *testing.T) {
	enum := testutil.NewMockEnumerator(testWindows()...)
	thumbs := testutil.NewMockThumbnailer(testutil.SmallDataURI())
	svc := newTestService(enum, thumbs, testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	uri, err := svc.RefreshThumbnailAsync(0x1002).Await(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testutil.SmallDataURI(), uri)
}

func TestEventOperationsWithoutEngine(t *testing.T) {
	// A Service built without an events engine still answers every
	// notification call without panicking.
	svc := newTestService(testutil.NewMockEnumerator(), testutil.NewMockThumbnailer(""), testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	assert.NotPanics(t, func() {
		svc.SubscribeAll(nil)
		svc.StopEvents()
	})
	assert.False(t, svc.UsingFallbackEvents())
}

func TestListedWindowMarshalJSON(t *testing.T) {
	// The image payloads must survive marshaling alongside the descriptor
	// wire fields.
	w := ListedWindow{
		Descriptor: window.Descriptor{
			Handle:         0x1001,
			Title:          "Editor",
			ExecutablePath: `C:\apps\editor.exe`,
			IsVisible:      true,
		},
		Thumbnail: testutil.SmallDataURI(),
		Icon:      imaging.Empty,
	}

	out, err := json.Marshal(w)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, float64(0x1001), decoded["id"])
	assert.Equal(t, float64(0x1001), decoded["handle"])
	assert.Equal(t, "Editor", decoded["title"])
	assert.Equal(t, testutil.SmallDataURI(), decoded["thumbnail"])
	assert.Equal(t, imaging.Empty, decoded["icon"])
}

func TestCloseIdempotent(t *testing.T) {
	svc := newTestService(testutil.NewMockEnumerator(), testutil.NewMockThumbnailer(""), testutil.NewMockIconProvider(""), testutil.NewMockFocuser())

	assert.NotPanics(t, func() {
		svc.Close()
		svc.Close()
	})
}
