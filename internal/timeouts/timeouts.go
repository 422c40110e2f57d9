// Package timeouts defines timeout and interval constants for window
// enumeration, capture, and change notification.
package timeouts

import "time"

const (
	// Capture Timings

	// ThumbnailTTL is how long a cached thumbnail stays fresh. Within this
	// window repeated lookups for the same geometry reuse the cached image
	// instead of recapturing.
	ThumbnailTTL = 800 * time.Millisecond

	// ThumbnailSettleDelay allows the compositor to render an off-screen
	// thumbnail of a minimized window before its pixels are copied out.
	ThumbnailSettleDelay = 50 * time.Millisecond

	// FramePollInterval is the delay between checks while waiting for a
	// composed frame to arrive from the frame capture runtime.
	FramePollInterval = 10 * time.Millisecond

	// FramePollAttempts bounds the frame wait. Combined with
	// FramePollInterval this caps a single frame capture at roughly 300ms.
	FramePollAttempts = 30

	// Change Notification Timings

	// EventPollInterval is the interval at which the fallback poller
	// re-enumerates windows to detect changes missed by system hooks.
	EventPollInterval = 250 * time.Millisecond

	// HookRecencyWindow is how recently a system hook event must have
	// arrived for the poller to treat hooks as healthy and suppress its
	// own duplicate notifications.
	HookRecencyWindow = 1 * time.Second

	// EventStopTimeout is the maximum time StopEvents waits for the hook
	// message loop and poller goroutines to exit before giving up.
	EventStopTimeout = 3 * time.Second

	// Focus Timings

	// FocusVerificationDelay allows time to verify that window focus has
	// successfully changed after a focus operation.
	FocusVerificationDelay = 100 * time.Millisecond
)
