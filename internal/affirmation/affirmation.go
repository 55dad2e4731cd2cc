package affirmation

import "time"

// Affirmation represents a single spoken clip.
// Immutable once handed to a session; owned by the content backend.
type Affirmation struct {
	ID         int64
	Text       string
	AudioURL   string // opaque locator resolvable by the audio engine
	Duration   time.Duration
	PlaylistID int64
}

// HasAudio returns true if the clip has a resolvable audio locator.
func (a Affirmation) HasAudio() bool {
	return a.AudioURL != ""
}

// Playlist holds collection metadata. The ordered clip list is fetched
// separately and supplied alongside at session start.
type Playlist struct {
	ID               int64
	Title            string
	Description      string
	TotalDuration    time.Duration
	AffirmationCount int
	GradientStart    string
	GradientEnd      string
	Icon             string
	CategoryID       int64
	Featured         bool
}

// BackgroundMusic is one loopable music bed, selected per listening
// session and never persisted as part of a playlist.
type BackgroundMusic struct {
	ID       int64
	Name     string
	AudioURL string
	Category string
}
