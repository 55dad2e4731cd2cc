package transport

import (
	"time"

	"github.com/serenemind/serene/internal/affirmation"
)

// View is the session snapshot exposed to rendering surfaces. Any UI
// (full player, minimized bar, list-row controls) is built purely on
// this plus the Service operations.
type View struct {
	HasSession bool
	Playlist   affirmation.Playlist
	Current    *affirmation.Affirmation
	Index      int
	Count      int

	State   State
	Intent  bool // desired play/pause state
	Audible bool // actual engine state, distinct from intent

	Position time.Duration
	Duration time.Duration
	Progress float64 // percent, position/duration*100 verbatim

	PrimaryVolume    float64
	BackgroundVolume float64
	Background       *affirmation.BackgroundMusic
}

// Service is the transport controller: the public operation surface of
// the playback engine. Operations never panic; failures surface through
// the toast notifier and the subscription Error channel, with observable
// session state left unchanged. Operations that touch the underlying
// engine instances are debounced by a short-TTL serialization guard:
// repeats inside the guard window are silently dropped, not queued.
type Service interface {
	// PlayPlaylist tears down any current session, creates a new one at
	// startIndex with intent=true, and begins loading that clip.
	PlayPlaylist(pl affirmation.Playlist, clips []affirmation.Affirmation, startIndex int) error

	// Toggle flips play/pause intent and drives both channels in lockstep.
	// No-op when no session exists.
	Toggle() error

	// Seek moves the current clip's position, clamped to [0, duration].
	// While paused, one position sample is published immediately so the
	// scrubber reflects the new position without waiting for the ticker.
	Seek(pos time.Duration) error

	// Next advances the cursor by one. No-op at the end of the list.
	Next() error

	// Previous restarts the current clip when more than the restart
	// threshold has played, otherwise moves the cursor back by one.
	Previous() error

	// SkipTo jumps to an arbitrary clip index. Out-of-range is a no-op.
	SkipTo(index int) error

	// SetVolume sets the primary (spoken clip) channel gain, live.
	SetVolume(v float64)

	// SetBackgroundVolume sets the music bed gain, live.
	SetBackgroundVolume(v float64)

	// SetBackgroundMusic selects or clears the looping bed. The bed only
	// becomes audible while the session is audible; selecting one while
	// playing starts it immediately.
	SetBackgroundMusic(m *affirmation.BackgroundMusic)

	// View returns the current session snapshot.
	View() View

	// Subscribe creates a new event subscription.
	Subscribe() *Subscription

	// Close ends the session and releases both channels.
	Close() error
}
