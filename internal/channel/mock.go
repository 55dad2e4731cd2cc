package channel

import (
	"sync"
	"time"
)

// LoadCall records one Load invocation on the mock.
type LoadCall struct {
	Gen  uint64
	URL  string
	Loop bool
}

// MockEngine is a test double for Engine. Loads never complete on their
// own; tests drive completion explicitly with EmitReady, EmitLoadFailed
// and EmitFinished so event ordering and staleness can be simulated.
type MockEngine struct {
	mu     sync.Mutex
	events chan Event

	gen      uint64
	duration time.Duration
	position time.Duration
	level    float64
	playing  bool
	loaded   bool
	drained  bool
	wantPlay bool
	playErr  error

	loadCalls []LoadCall
	seekCalls []time.Duration
	stopCalls int
}

// NewMockEngine creates a mock engine for testing.
func NewMockEngine() *MockEngine {
	return &MockEngine{
		events: make(chan Event, eventBufferSize),
		level:  1,
	}
}

func (m *MockEngine) Load(gen uint64, url string, loop bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen = gen
	m.loaded = false
	m.playing = false
	m.drained = false
	m.duration = 0
	m.position = 0
	m.loadCalls = append(m.loadCalls, LoadCall{Gen: gen, URL: url, Loop: loop})
}

func (m *MockEngine) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playErr != nil {
		return m.playErr
	}
	if !m.loaded {
		m.wantPlay = true
		return nil
	}
	if m.drained {
		// A drained stream re-finishes as soon as it is resubmitted; it
		// never becomes audible again without a seek or reload.
		select {
		case m.events <- Event{Kind: EventFinished, Gen: m.gen}:
		default:
		}
		return nil
	}
	m.playing = true
	return nil
}

func (m *MockEngine) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
	m.wantPlay = false
}

func (m *MockEngine) SeekTo(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.loaded {
		return
	}
	m.position = pos
	m.drained = false
	m.seekCalls = append(m.seekCalls, pos)
}

func (m *MockEngine) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *MockEngine) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *MockEngine) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	m.level = level
}

func (m *MockEngine) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.level
}

func (m *MockEngine) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *MockEngine) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = false
	m.playing = false
	m.wantPlay = false
	m.position = 0
	m.duration = 0
	m.stopCalls++
}

func (m *MockEngine) Close() {
	m.Stop()
}

func (m *MockEngine) Events() <-chan Event {
	return m.events
}

// Test helpers

// EmitReady completes the load for the given generation. If the
// generation is still current the mock marks itself loaded and honours a
// pending Play, mirroring the real engine.
func (m *MockEngine) EmitReady(gen uint64, duration time.Duration) {
	m.mu.Lock()
	if gen == m.gen {
		m.loaded = true
		m.duration = duration
		if m.wantPlay && m.playErr == nil {
			m.playing = true
			m.wantPlay = false
		}
	}
	m.mu.Unlock()
	m.events <- Event{Kind: EventReady, Gen: gen, Duration: duration}
}

// EmitLoadFailed fails the load for the given generation.
func (m *MockEngine) EmitLoadFailed(gen uint64, err error) {
	m.events <- Event{Kind: EventLoadFailed, Gen: gen, Err: err}
}

// EmitFinished simulates the stream for the given generation draining.
// The mock stays loaded but drained, like the real engine after the
// mixer drops the sequence.
func (m *MockEngine) EmitFinished(gen uint64) {
	m.mu.Lock()
	if gen == m.gen {
		m.playing = false
		m.drained = true
	}
	m.mu.Unlock()
	m.events <- Event{Kind: EventFinished, Gen: gen}
}

// SetPlayError injects a failure for subsequent Play calls.
func (m *MockEngine) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

// SetPosition sets the reported playback position.
func (m *MockEngine) SetPosition(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

// LoadCalls returns every Load invocation in order.
func (m *MockEngine) LoadCalls() []LoadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LoadCall, len(m.loadCalls))
	copy(out, m.loadCalls)
	return out
}

// SeekCalls returns every SeekTo invocation in order.
func (m *MockEngine) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]time.Duration, len(m.seekCalls))
	copy(out, m.seekCalls)
	return out
}

// StopCalls returns how many times Stop was called.
func (m *MockEngine) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

// Verify MockEngine implements Engine at compile time.
var _ Engine = (*MockEngine)(nil)
