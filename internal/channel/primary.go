package channel

import (
	"time"

	"github.com/serenemind/serene/internal/affirmation"
)

// Primary drives the affirmation clip channel. Each Load bumps a
// generation counter; engine events carry the generation they belong to,
// so a slow load that was skipped past can never start audible playback
// after the listener has moved on.
type Primary struct {
	eng Engine
	gen uint64
}

// NewPrimary wraps an engine as the primary channel.
func NewPrimary(eng Engine) *Primary {
	return &Primary{eng: eng}
}

// Load tears down the current clip and starts loading the given one.
// It returns the new load generation.
func (p *Primary) Load(a affirmation.Affirmation) uint64 {
	p.gen++
	p.eng.Load(p.gen, a.AudioURL, false)
	return p.gen
}

// Gen returns the current load generation.
func (p *Primary) Gen() uint64 { return p.gen }

// IsCurrent reports whether gen is the active load target. Events from
// older generations are stale and must be discarded.
func (p *Primary) IsCurrent(gen uint64) bool { return gen == p.gen }

// Play starts or resumes the clip.
func (p *Primary) Play() error { return p.eng.Play() }

// Pause suspends the clip.
func (p *Primary) Pause() { p.eng.Pause() }

// SeekTo moves the clip position.
func (p *Primary) SeekTo(pos time.Duration) { p.eng.SeekTo(pos) }

// Position returns the clip position.
func (p *Primary) Position() time.Duration { return p.eng.Position() }

// Duration returns the decoded clip duration.
func (p *Primary) Duration() time.Duration { return p.eng.Duration() }

// SetVolume sets the channel gain live.
func (p *Primary) SetVolume(level float64) { p.eng.SetVolume(level) }

// Volume returns the channel gain.
func (p *Primary) Volume() float64 { return p.eng.Volume() }

// Playing reports whether the engine is audibly playing.
func (p *Primary) Playing() bool { return p.eng.Playing() }

// Stop stops and releases the current clip.
func (p *Primary) Stop() { p.eng.Stop() }

// Events returns the engine event stream.
func (p *Primary) Events() <-chan Event { return p.eng.Events() }

// Close releases the channel.
func (p *Primary) Close() { p.eng.Close() }
