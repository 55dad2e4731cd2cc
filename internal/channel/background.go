package channel

import (
	"github.com/serenemind/serene/internal/affirmation"
)

// Background drives the looping music bed. Setting a track never starts
// it by itself; starting and stopping is issued externally in lockstep
// with the primary channel so the two cannot drift into an
// "only one is playing" state.
type Background struct {
	eng   Engine
	track *affirmation.BackgroundMusic
	gen   uint64
}

// NewBackground wraps an engine as the background channel.
func NewBackground(eng Engine) *Background {
	return &Background{eng: eng}
}

// SetTrack selects a new bed (or clears it with nil). The previous
// instance is stopped and released; the new one loads with the loop flag
// on and does not auto-start.
func (b *Background) SetTrack(m *affirmation.BackgroundMusic) {
	b.eng.Stop()
	b.track = m
	if m == nil {
		return
	}
	b.gen++
	b.eng.Load(b.gen, m.AudioURL, true)
}

// Track returns the selected bed, if any.
func (b *Background) Track() *affirmation.BackgroundMusic { return b.track }

// Gen returns the current load generation.
func (b *Background) Gen() uint64 { return b.gen }

// IsCurrent reports whether gen is the active load target. Events from
// a replaced bed's load are stale and must be discarded.
func (b *Background) IsCurrent(gen uint64) bool { return gen == b.gen }

// Start begins (or resumes) the bed. A no-op when no track is selected;
// a start issued before the bed has finished loading is honoured on
// ready by the engine.
func (b *Background) Start() error {
	if b.track == nil {
		return nil
	}
	return b.eng.Play()
}

// Pause suspends the bed.
func (b *Background) Pause() { b.eng.Pause() }

// SetVolume sets the bed gain live, without a reload.
func (b *Background) SetVolume(level float64) { b.eng.SetVolume(level) }

// Volume returns the bed gain.
func (b *Background) Volume() float64 { return b.eng.Volume() }

// Playing reports whether the bed is audible.
func (b *Background) Playing() bool { return b.eng.Playing() }

// Stop stops and releases the bed without clearing the selection.
func (b *Background) Stop() { b.eng.Stop() }

// Events returns the engine event stream.
func (b *Background) Events() <-chan Event { return b.eng.Events() }

// Close releases the channel.
func (b *Background) Close() { b.eng.Close() }
