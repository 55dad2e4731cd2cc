package transport

import (
	"time"

	"github.com/serenemind/serene/internal/affirmation"
	"github.com/serenemind/serene/internal/errmsg"
)

// StateChange is emitted when the user-facing playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// ClipChange is emitted when the cursor moves to a different clip.
//
// Emitted by:
//   - PlayPlaylist: for the starting clip
//   - Next/Previous/SkipTo: when navigating to another clip
//   - end-of-clip auto-advance
//
// NOT emitted by:
//   - Previous when it restarts the current clip (cursor unchanged)
//   - Toggle/Seek: state and position changes do not emit ClipChange
type ClipChange struct {
	Previous      *affirmation.Affirmation
	Current       *affirmation.Affirmation
	PreviousIndex int
	Index         int
}

// PositionChange is emitted on every position sample, on seeks, and when
// the engine reports the real decoded duration.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
	Progress float64
}

// ErrorEvent is emitted once per playback failure. Errors never
// propagate as panics into consumer control flow.
type ErrorEvent struct {
	Op  errmsg.Op
	Err error
}

// Message returns the user-facing text for the failure.
func (e ErrorEvent) Message() string {
	return errmsg.Format(e.Op, e.Err)
}
