// Package events delivers window lifecycle notifications from two
// producers: system event hooks and a fallback poller. Both feed one
// dispatch queue; the dispatcher drops poller output while hook events are
// flowing, so subscribers never see double notifications for one change.
package events

import (
	"encoding/json"
	"fmt"

	"github.com/winpeek/winpeek/internal/window"
)

// Kind is the window lifecycle event type.
type Kind int

const (
	Created Kind = iota
	Closed
	Focused
	Minimized
	Restored
)

// kindNames doubles as the wire names used in CLI output.
var kindNames = map[Kind]string{
	Created:   "created",
	Closed:    "closed",
	Focused:   "focused",
	Minimized: "minimized",
	Restored:  "restored",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON emits the wire name, never the numeric value.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts the wire names ParseKind knows.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	kind, ok := ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown event kind %q", name)
	}
	*k = kind
	return nil
}

// ParseKind maps a wire name back to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Kinds lists every event kind in a stable order.
func Kinds() []Kind {
	return []Kind{Created, Closed, Focused, Minimized, Restored}
}

// Event is one window lifecycle notification. Closed events are built after
// the window is gone, so Title and ExecutablePath may be empty; Handle is
// always set.
type Event struct {
	Kind           Kind          `json:"type"`
	Handle         window.Handle `json:"id"`
	Title          string        `json:"title"`
	ExecutablePath string        `json:"executablePath"`
	IsVisible      bool          `json:"isVisible"`
}

// MarshalJSON emits the handle under both "id" and "handle" so consumers
// can correlate events with list entries by either key.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID             window.Handle `json:"id"`
		Handle         window.Handle `json:"handle"`
		Title          string        `json:"title"`
		ExecutablePath string        `json:"executablePath"`
		IsVisible      bool          `json:"isVisible"`
		Kind           Kind          `json:"type"`
	}{e.Handle, e.Handle, e.Title, e.ExecutablePath, e.IsVisible, e.Kind})
}

// Handler consumes events. Handlers run on the dispatcher goroutine and
// must not block.
type Handler func(Event)

// Origin tags which producer posted an event.
type Origin int

const (
	// OriginHook marks events from system event hooks.
	OriginHook Origin = iota

	// OriginPoller marks events from the fallback poller. These are
	// dropped while hooks are healthy.
	OriginPoller
)

// PostFunc accepts an event from a producer.
type PostFunc func(ev Event, origin Origin)

// Source is an event producer owned by the engine.
type Source interface {
	// Start begins producing events into post. It must not block.
	Start(post PostFunc) error

	// Stop halts production and waits for the producer to wind down.
	// Safe to call when not started.
	Stop()
}
