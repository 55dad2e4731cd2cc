package transport

// State represents the session's user-facing playback state.
type State int

const (
	// StateStopped means no session is loaded.
	StateStopped State = iota
	// StatePlaying means a session exists and intent is to be audible.
	StatePlaying
	// StatePaused means a session exists with playback suspended.
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a session exists (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}
