// Package session holds the single source of truth for one playback
// session: the loaded playlist, its ordered clips, the cursor, the
// user-facing play intent and both channel volumes. It performs no I/O;
// the transport service owns and mutates it.
package session

import (
	"errors"
	"time"

	"github.com/serenemind/serene/internal/affirmation"
)

var (
	// ErrEmptyPlaylist is returned when a session is started with no clips.
	ErrEmptyPlaylist = errors.New("playlist has no affirmations")
	// ErrNoAudio is returned when the targeted clip has no audio locator.
	ErrNoAudio = errors.New("affirmation has no audio")
)

// Session is the runtime aggregate for one playlist being played.
// A nil *Session means nothing is queued.
type Session struct {
	playlist      affirmation.Playlist
	clips         *affirmation.List
	cursor        int
	intent        bool
	background    *affirmation.BackgroundMusic
	primaryVol    float64
	backgroundVol float64

	position time.Duration
	duration time.Duration
}

// Start creates a session positioned at startIndex.
// Fails without creating anything if the clip list is empty or the clip
// at startIndex has no audio locator.
func Start(pl affirmation.Playlist, clips []affirmation.Affirmation, startIndex int, primaryVol, backgroundVol float64) (*Session, error) {
	if len(clips) == 0 {
		return nil, ErrEmptyPlaylist
	}
	if startIndex < 0 || startIndex >= len(clips) {
		startIndex = 0
	}
	if !clips[startIndex].HasAudio() {
		return nil, ErrNoAudio
	}
	return &Session{
		playlist:      pl,
		clips:         affirmation.NewList(clips),
		cursor:        startIndex,
		intent:        true,
		primaryVol:    clampUnit(primaryVol),
		backgroundVol: clampUnit(backgroundVol),
	}, nil
}

// Playlist returns the loaded playlist metadata.
func (s *Session) Playlist() affirmation.Playlist { return s.playlist }

// Current returns the clip at the cursor.
func (s *Session) Current() *affirmation.Affirmation { return s.clips.At(s.cursor) }

// Cursor returns the current clip index.
func (s *Session) Cursor() int { return s.cursor }

// Len returns the number of clips in the session.
func (s *Session) Len() int { return s.clips.Len() }

// Clip returns the clip at the given index, or nil if out of range.
func (s *Session) Clip(index int) *affirmation.Affirmation { return s.clips.At(index) }

// SetCursor moves the cursor. Out-of-range indexes are rejected so the
// cursor invariant always holds.
func (s *Session) SetCursor(index int) bool {
	if index < 0 || index >= s.clips.Len() {
		return false
	}
	s.cursor = index
	s.position = 0
	s.duration = 0
	return true
}

// HasNext returns true if a clip follows the cursor.
func (s *Session) HasNext() bool { return s.cursor < s.clips.Len()-1 }

// Intent returns the user-facing desired play state.
func (s *Session) Intent() bool { return s.intent }

// SetIntent flips the desired play state.
func (s *Session) SetIntent(playing bool) { s.intent = playing }

// Background returns the selected background track, if any.
func (s *Session) Background() *affirmation.BackgroundMusic { return s.background }

// SetBackground selects or clears the background track.
func (s *Session) SetBackground(m *affirmation.BackgroundMusic) { s.background = m }

// PrimaryVolume returns the primary channel gain in [0,1].
func (s *Session) PrimaryVolume() float64 { return s.primaryVol }

// BackgroundVolume returns the background channel gain in [0,1].
func (s *Session) BackgroundVolume() float64 { return s.backgroundVol }

// SetPrimaryVolume sets the primary channel gain, clamped to [0,1].
func (s *Session) SetPrimaryVolume(v float64) { s.primaryVol = clampUnit(v) }

// SetBackgroundVolume sets the background channel gain, clamped to [0,1].
func (s *Session) SetBackgroundVolume(v float64) { s.backgroundVol = clampUnit(v) }

// Position returns the last observed playback position.
func (s *Session) Position() time.Duration { return s.position }

// Duration returns the engine-reported duration of the current clip,
// or zero until the engine has reported one.
func (s *Session) Duration() time.Duration { return s.duration }

// SetPosition records an observed playback position.
func (s *Session) SetPosition(pos time.Duration) { s.position = pos }

// SetDuration records the decoded duration reported by the engine.
func (s *Session) SetDuration(d time.Duration) { s.duration = d }

// Progress returns playback progress as a percentage (0-100).
// Computed verbatim from position and duration; zero while the duration
// is unknown.
func (s *Session) Progress() float64 {
	if s.duration == 0 {
		return 0
	}
	return float64(s.position) / float64(s.duration) * 100
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
