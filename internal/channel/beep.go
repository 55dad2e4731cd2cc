package channel

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	// engineSampleRate is the fixed speaker rate; every decoded stream is
	// resampled to it so two channels can share one speaker.
	engineSampleRate = beep.SampleRate(44100)

	eventBufferSize = 16
	fetchTimeout    = 30 * time.Second
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(engineSampleRate, engineSampleRate.N(time.Second/10))
	})
	return speakerErr
}

// BeepEngine is an Engine backed by the beep speaker. Clips are fetched
// fully into memory before decoding; affirmation clips and music beds are
// short enough that streaming decode is not worth the seek complexity.
type BeepEngine struct {
	mu     sync.Mutex
	events chan Event
	client *http.Client

	gen      uint64
	loop     bool
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	playing  bool
	started  bool
	wantPlay bool
	closed   bool
}

// NewBeepEngine creates an engine instance with full volume.
func NewBeepEngine() *BeepEngine {
	return &BeepEngine{
		events: make(chan Event, eventBufferSize),
		client: &http.Client{Timeout: fetchTimeout},
		level:  1,
	}
}

// Load releases the current media and starts an asynchronous fetch+decode
// of the given resource. Completion arrives on Events tagged with gen.
func (e *BeepEngine) Load(gen uint64, url string, loop bool) {
	e.Stop()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.gen = gen
	e.loop = loop
	e.mu.Unlock()

	go e.doLoad(gen, url)
}

func (e *BeepEngine) doLoad(gen uint64, url string) {
	src, err := e.fetch(url)
	if err != nil {
		e.emit(Event{Kind: EventLoadFailed, Gen: gen, Err: err})
		return
	}

	streamer, format, err := mp3.Decode(src)
	if err != nil {
		src.Close()
		e.emit(Event{Kind: EventLoadFailed, Gen: gen, Err: fmt.Errorf("decode: %w", err)})
		return
	}

	e.mu.Lock()
	if e.closed || gen != e.gen {
		// A newer load superseded this one while it was in flight.
		e.mu.Unlock()
		streamer.Close()
		return
	}
	e.streamer = streamer
	e.format = format
	duration := format.SampleRate.D(streamer.Len())
	wantPlay := e.wantPlay
	e.mu.Unlock()

	e.emit(Event{Kind: EventReady, Gen: gen, Duration: duration})

	if wantPlay {
		_ = e.Play()
	}
}

// fetch resolves the opaque locator: HTTP(S) URLs are downloaded, anything
// else is treated as a local path.
func (e *BeepEngine) fetch(url string) (io.ReadSeekCloser, error) {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		resp, err := e.client.Get(url)
		if err != nil {
			return nil, fmt.Errorf("fetch audio: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch audio: unexpected status %s", resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("fetch audio: %w", err)
		}
		return &memReader{Reader: bytes.NewReader(data)}, nil
	}

	data, err := os.ReadFile(url)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	return &memReader{Reader: bytes.NewReader(data)}, nil
}

// Play starts or resumes playback. A Play issued before the load has
// completed is remembered and honoured when the resource becomes ready.
func (e *BeepEngine) Play() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	if e.streamer == nil {
		e.wantPlay = true
		e.mu.Unlock()
		return nil
	}
	e.wantPlay = false

	if e.started {
		ctrl := e.ctrl
		e.playing = true
		e.mu.Unlock()
		speaker.Lock()
		ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	if err := initSpeaker(); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("init speaker: %w", err)
	}

	var src beep.Streamer = e.streamer
	if e.loop {
		looped, err := beep.Loop2(e.streamer)
		if err != nil {
			e.mu.Unlock()
			return fmt.Errorf("loop stream: %w", err)
		}
		src = looped
	}
	e.volume = &effects.Volume{
		Streamer: src,
		Base:     2,
		Volume:   levelToVolume(e.level),
		Silent:   e.level <= 0,
	}
	e.ctrl = &beep.Ctrl{
		Streamer: beep.Resample(4, e.format.SampleRate, engineSampleRate, e.volume),
	}
	e.started = true
	e.playing = true
	gen := e.gen
	ctrl := e.ctrl
	e.mu.Unlock()

	speaker.Play(beep.Seq(ctrl, beep.Callback(func() {
		e.finished(gen)
	})))
	return nil
}

// finished runs inside the speaker's streaming loop when the sequence
// drains. Stops torn down via Stop never reach here with a live streamer.
func (e *BeepEngine) finished(gen uint64) {
	e.mu.Lock()
	if e.closed || gen != e.gen || e.streamer == nil {
		e.mu.Unlock()
		return
	}
	// The mixer has dropped the drained sequence. Tear the chain down so
	// a later Play rebuilds it and resubmits to the speaker instead of
	// unpausing an orphaned ctrl that would never produce audio again.
	e.playing = false
	e.started = false
	e.ctrl = nil
	e.volume = nil
	e.mu.Unlock()

	e.emit(Event{Kind: EventFinished, Gen: gen})
}

// Pause suspends playback without releasing the media.
func (e *BeepEngine) Pause() {
	e.mu.Lock()
	ctrl := e.ctrl
	e.playing = false
	e.wantPlay = false
	e.mu.Unlock()

	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = true
	speaker.Unlock()
}

// SeekTo moves the playback position, clamped to the stream bounds.
func (e *BeepEngine) SeekTo(pos time.Duration) {
	e.mu.Lock()
	streamer := e.streamer
	format := e.format
	e.mu.Unlock()

	if streamer == nil {
		return
	}

	n := format.SampleRate.N(pos)
	speaker.Lock()
	if n < 0 {
		n = 0
	}
	if n > streamer.Len() {
		n = streamer.Len()
	}
	_ = streamer.Seek(n)
	speaker.Unlock()
}

// Position returns the current playback position.
func (e *BeepEngine) Position() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	// Read without the speaker lock - may be slightly stale but avoids
	// deadlocking against the finished callback.
	return e.format.SampleRate.D(e.streamer.Position())
}

// Duration returns the decoded stream duration, or zero before ready.
func (e *BeepEngine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

// SetVolume sets the gain level (0.0 to 1.0) live, without a reload.
func (e *BeepEngine) SetVolume(level float64) {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	e.mu.Lock()
	e.level = level
	vol := e.volume
	e.mu.Unlock()

	if vol == nil {
		return
	}
	speaker.Lock()
	vol.Volume = levelToVolume(level)
	vol.Silent = level <= 0
	speaker.Unlock()
}

// Volume returns the current gain level.
func (e *BeepEngine) Volume() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.level
}

// Playing reports whether the engine is actually producing audio.
func (e *BeepEngine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// Stop stops playback and releases the current media synchronously. The
// engine remains usable for a subsequent Load.
func (e *BeepEngine) Stop() {
	e.mu.Lock()
	ctrl := e.ctrl
	streamer := e.streamer
	e.streamer = nil
	e.ctrl = nil
	e.volume = nil
	e.started = false
	e.playing = false
	e.wantPlay = false
	e.mu.Unlock()

	if ctrl != nil {
		// Detaching the streamer makes the mixer drop the sequence on its
		// next pull without clearing the other channel's stream.
		speaker.Lock()
		ctrl.Streamer = nil
		speaker.Unlock()
	}
	if streamer != nil {
		streamer.Close()
	}
}

// Close releases the engine. Events already buffered remain readable.
func (e *BeepEngine) Close() {
	e.Stop()
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

// Events returns the engine event stream.
func (e *BeepEngine) Events() <-chan Event {
	return e.events
}

func (e *BeepEngine) emit(ev Event) {
	select {
	case e.events <- ev:
	default:
		// Drop if buffer full
	}
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a logarithmic scale where Volume is in "decibels" with base 2.
// Volume = 0 means no change, -1 = half volume, -2 = quarter, etc.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

type memReader struct {
	*bytes.Reader
}

func (*memReader) Close() error { return nil }

// Verify BeepEngine implements Engine at compile time.
var _ Engine = (*BeepEngine)(nil)
