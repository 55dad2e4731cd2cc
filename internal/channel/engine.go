// Package channel wraps the platform audio engine. A playback session
// drives two independent engine instances: the primary channel for the
// current affirmation clip and the background channel for an optional
// looping music bed.
package channel

import "time"

// EventKind identifies an engine event.
type EventKind int

const (
	// EventReady fires when a load has decoded and reports the real duration.
	EventReady EventKind = iota
	// EventLoadFailed fires when a resource cannot be fetched or decoded.
	EventLoadFailed
	// EventFinished fires when a non-looping stream reaches its end.
	EventFinished
)

// String returns the event kind name for debugging.
func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "Ready"
	case EventLoadFailed:
		return "LoadFailed"
	case EventFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

// Event is one engine callback, tagged with the load generation it
// belongs to. Consumers discard events whose generation is no longer
// current (stale-callback guard).
type Event struct {
	Kind     EventKind
	Gen      uint64
	Duration time.Duration // set on EventReady
	Err      error         // set on EventLoadFailed
}

// Engine is one audio output instance. Load is asynchronous: completion
// arrives as an EventReady or EventLoadFailed on Events, potentially much
// later or never. Play, Pause and SeekTo are no-ops until a load has
// completed, except that a Play issued before the resource is ready is
// remembered and honoured on EventReady.
type Engine interface {
	// Load tears down any current media synchronously, then fetches and
	// decodes the resource off the caller's flow. loop enables endless
	// repetition (no EventFinished is ever emitted for a looping load).
	Load(gen uint64, url string, loop bool)
	Play() error
	Pause()
	SeekTo(pos time.Duration)
	Position() time.Duration
	Duration() time.Duration
	SetVolume(level float64)
	Volume() float64
	Playing() bool
	// Stop stops and releases the current media. The engine stays usable
	// for a subsequent Load.
	Stop()
	Events() <-chan Event
	Close()
}
