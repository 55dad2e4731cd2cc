package transport

import (
	"sync"
	"time"

	"github.com/serenemind/serene/internal/affirmation"
	"github.com/serenemind/serene/internal/channel"
	"github.com/serenemind/serene/internal/errmsg"
	"github.com/serenemind/serene/internal/guard"
	"github.com/serenemind/serene/internal/notify"
	"github.com/serenemind/serene/internal/session"
)

const (
	defaultPollInterval = 100 * time.Millisecond

	// restartThreshold is how far into a clip Previous restarts it
	// instead of moving back.
	restartThreshold = 3 * time.Second
)

// Options configures a transport service.
type Options struct {
	Notifier         notify.Notifier // defaults to notify.Stub
	GuardTTL         time.Duration   // defaults to guard.DefaultTTL
	PollInterval     time.Duration   // defaults to 100ms
	PrimaryVolume    float64         // initial gains, clamped to [0,1]
	BackgroundVolume float64
}

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.Mutex

	primary    *channel.Primary
	background *channel.Background
	sess       *session.Session

	notifier notify.Notifier
	lock     *guard.Lock
	poll     time.Duration

	primaryVol    float64
	backgroundVol float64

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a transport service owning both channel engines. No other
// caller may hold a reference to the engines after this.
func New(primaryEng, backgroundEng channel.Engine, opts Options) Service {
	if opts.Notifier == nil {
		opts.Notifier = notify.Stub{}
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	s := &serviceImpl{
		primary:       channel.NewPrimary(primaryEng),
		background:    channel.NewBackground(backgroundEng),
		notifier:      opts.Notifier,
		lock:          guard.New(opts.GuardTTL),
		poll:          opts.PollInterval,
		primaryVol:    clampUnit(opts.PrimaryVolume),
		backgroundVol: clampUnit(opts.BackgroundVolume),
		done:          make(chan struct{}),
	}
	s.primary.SetVolume(s.primaryVol)
	s.background.SetVolume(s.backgroundVol)

	go s.eventLoop()
	return s
}

// eventLoop is the single cooperative loop: engine events, the position
// ticker and nothing else. All transport state transitions triggered by
// callbacks happen here, serialized with the public operations by mu.
func (s *serviceImpl) eventLoop() {
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case ev := <-s.primary.Events():
			s.handlePrimaryEvent(ev)
		case ev := <-s.background.Events():
			s.handleBackgroundEvent(ev)
		case <-ticker.C:
			s.tick()
		}
	}
}

// PlayPlaylist starts a new session. Validation happens before any
// teardown so a failed start leaves the previous session intact, and
// before the guard so a rejected start does not swallow a retry.
func (s *serviceImpl) PlayPlaylist(pl affirmation.Playlist, clips []affirmation.Affirmation, startIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}

	prevState := s.stateLocked()

	next, err := session.Start(pl, clips, startIndex, s.primaryVol, s.backgroundVol)
	if err != nil {
		s.failLocked(errmsg.OpSessionStart, err)
		return err
	}
	if !s.lock.TryAcquire() {
		return nil
	}

	// Previous session's channel resources are released before the new
	// clip loads; the bed keeps its selection across sessions.
	s.primary.Stop()
	s.background.Pause()
	next.SetBackground(s.background.Track())
	s.sess = next

	clip := next.Current()
	s.primary.Load(*clip)

	s.emitClip(ClipChange{Current: clip, PreviousIndex: -1, Index: next.Cursor()})
	s.emitState(prevState, StatePlaying)
	s.emitPosition(s.positionLocked())
	return nil
}

// Toggle flips intent and drives both channels in the same tick.
func (s *serviceImpl) Toggle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	// No-ops never consume the guard window; only operations that will
	// actually touch an engine do.
	if s.sess == nil || !s.lock.TryAcquire() {
		return nil
	}

	prev := s.stateLocked()
	playing := !s.sess.Intent()
	s.sess.SetIntent(playing)

	if playing {
		if err := s.primary.Play(); err != nil {
			// Intent stays as requested; the view's Audible field keeps
			// the UI honest about the silent channel.
			s.failLocked(errmsg.OpClipPlay, err)
		}
		if s.sess.Background() != nil {
			if err := s.background.Start(); err != nil {
				s.failLocked(errmsg.OpBackgroundPlay, err)
			}
		}
	} else {
		s.primary.Pause()
		s.background.Pause()
	}

	s.emitState(prev, s.stateLocked())
	return nil
}

// Seek moves the clip position, clamped to the known duration. No-op
// until the engine has reported one (nothing loaded yet).
func (s *serviceImpl) Seek(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || s.sess.Duration() == 0 || !s.lock.TryAcquire() {
		return nil
	}

	if pos < 0 {
		pos = 0
	}
	if d := s.sess.Duration(); pos > d {
		pos = d
	}

	s.primary.SeekTo(pos)
	s.sess.SetPosition(pos)

	// Kick one position sample immediately so a paused scrubber reflects
	// the new position without waiting for the ticker.
	s.emitPosition(s.positionLocked())
	return nil
}

// Next advances to the following clip. No-op at the end of the list.
func (s *serviceImpl) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || !s.sess.HasNext() || !s.lock.TryAcquire() {
		return nil
	}
	s.advanceLocked(s.sess.Cursor() + 1)
	return nil
}

// Previous restarts the clip when more than restartThreshold has played,
// otherwise moves back one clip. No-op at the start of the list.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil
	}

	restart := s.sess.Position() > restartThreshold
	if !restart && s.sess.Cursor() == 0 {
		return nil
	}
	if !s.lock.TryAcquire() {
		return nil
	}

	if restart {
		s.primary.SeekTo(0)
		s.sess.SetPosition(0)
		s.emitPosition(s.positionLocked())
		return nil
	}
	s.advanceLocked(s.sess.Cursor() - 1)
	return nil
}

// SkipTo jumps to the given clip index. Out-of-range is a no-op.
func (s *serviceImpl) SkipTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil || index < 0 || index >= s.sess.Len() || !s.lock.TryAcquire() {
		return nil
	}
	s.advanceLocked(index)
	return nil
}

// advanceLocked moves the cursor and loads the target clip. A clip with
// no audio locator is reported and the session stays parked where it is;
// the current channel is not torn down.
func (s *serviceImpl) advanceLocked(index int) {
	clip := s.sess.Clip(index)
	if clip == nil {
		return
	}
	if !clip.HasAudio() {
		s.failLocked(errmsg.OpClipLoad, session.ErrNoAudio)
		return
	}

	prev := s.sess.Current()
	prevIndex := s.sess.Cursor()
	s.sess.SetCursor(index)
	s.primary.Load(*clip)

	s.emitClip(ClipChange{Previous: prev, Current: clip, PreviousIndex: prevIndex, Index: index})
	s.emitPosition(s.positionLocked())
}

func (s *serviceImpl) handlePrimaryEvent(ev channel.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stale-callback guard: events for a superseded load are discarded
	// silently, as are events arriving after the session ended.
	if s.sess == nil || !s.primary.IsCurrent(ev.Gen) {
		return
	}

	switch ev.Kind {
	case channel.EventReady:
		s.sess.SetDuration(ev.Duration)
		if s.sess.Intent() {
			// Ready implies maybe-autoplay: this is how a track advance
			// resumes playback without a second call. The bed starts in
			// the same tick as the primary.
			if err := s.primary.Play(); err != nil {
				s.failLocked(errmsg.OpClipPlay, err)
			} else if s.sess.Background() != nil {
				if err := s.background.Start(); err != nil {
					s.failLocked(errmsg.OpBackgroundPlay, err)
				}
			}
		}
		s.emitPosition(s.positionLocked())

	case channel.EventLoadFailed:
		// Cursor is not advanced and intent is not flipped; the session
		// stays at the failed clip so the listener can retry or skip.
		s.failLocked(errmsg.OpClipLoad, ev.Err)

	case channel.EventFinished:
		s.advanceOrFinishLocked()
	}
}

// advanceOrFinishLocked is the end-of-clip transition: advance like Next
// would, except that the end of the list flips intent to false instead
// of no-opping. The cursor stays on the last clip.
func (s *serviceImpl) advanceOrFinishLocked() {
	if s.sess.HasNext() {
		s.advanceLocked(s.sess.Cursor() + 1)
		return
	}

	prev := s.stateLocked()
	s.sess.SetIntent(false)
	s.background.Pause()
	s.emitState(prev, s.stateLocked())
}

func (s *serviceImpl) handleBackgroundEvent(ev channel.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Same staleness rule as the primary channel: a replaced bed's late
	// events must not surface for a track the listener no longer has.
	if !s.background.IsCurrent(ev.Gen) {
		return
	}

	// The bed loops forever, so Finished never fires for it; Ready needs
	// no action because a pending start is honoured by the engine.
	if ev.Kind == channel.EventLoadFailed {
		s.failLocked(errmsg.OpBackgroundLoad, ev.Err)
	}
}

// tick samples the primary position while intent is playing.
func (s *serviceImpl) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sess == nil || !s.sess.Intent() {
		return
	}
	s.sess.SetPosition(s.primary.Position())
	s.emitPosition(s.positionLocked())
}

// SetVolume sets the primary channel gain live.
func (s *serviceImpl) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.primaryVol = clampUnit(v)
	s.primary.SetVolume(s.primaryVol)
	if s.sess != nil {
		s.sess.SetPrimaryVolume(s.primaryVol)
	}
}

// SetBackgroundVolume sets the bed gain live, no reload required.
func (s *serviceImpl) SetBackgroundVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.backgroundVol = clampUnit(v)
	s.background.SetVolume(s.backgroundVol)
	if s.sess != nil {
		s.sess.SetBackgroundVolume(s.backgroundVol)
	}
}

// SetBackgroundMusic selects or clears the looping bed.
func (s *serviceImpl) SetBackgroundMusic(m *affirmation.BackgroundMusic) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.background.SetTrack(m)
	s.background.SetVolume(s.backgroundVol)

	if s.sess == nil {
		return
	}
	s.sess.SetBackground(m)
	if m != nil && s.sess.Intent() {
		// Session is audible: the new bed starts immediately (or as soon
		// as its load completes). While paused it waits for the next
		// play transition.
		if err := s.background.Start(); err != nil {
			s.failLocked(errmsg.OpBackgroundPlay, err)
		}
	}
}

// View returns the current session snapshot.
func (s *serviceImpl) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		State:            StateStopped,
		PrimaryVolume:    s.primary.Volume(),
		BackgroundVolume: s.background.Volume(),
		Background:       s.background.Track(),
	}
	if s.sess == nil {
		return v
	}

	v.HasSession = true
	v.Playlist = s.sess.Playlist()
	v.Current = s.sess.Current()
	v.Index = s.sess.Cursor()
	v.Count = s.sess.Len()
	v.State = s.stateLocked()
	v.Intent = s.sess.Intent()
	v.Audible = s.primary.Playing()
	v.Position = s.sess.Position()
	v.Duration = s.sess.Duration()
	v.Progress = s.sess.Progress()
	v.Background = s.sess.Background()
	return v
}

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close ends the session and releases both channels.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.sess = nil
	close(s.done)
	s.mu.Unlock()

	s.primary.Close()
	s.background.Close()
	s.lock.Release()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

func (s *serviceImpl) stateLocked() State {
	if s.sess == nil {
		return StateStopped
	}
	if s.sess.Intent() {
		return StatePlaying
	}
	return StatePaused
}

func (s *serviceImpl) positionLocked() PositionChange {
	return PositionChange{
		Position: s.sess.Position(),
		Duration: s.sess.Duration(),
		Progress: s.sess.Progress(),
	}
}

// failLocked reports one failure through the toast surface and the
// subscription error channel. Nothing is thrown upward.
func (s *serviceImpl) failLocked(op errmsg.Op, err error) {
	s.notifier.Notify(notify.Toast{Level: notify.LevelError, Message: errmsg.Format(op, err)})
	s.emitError(ErrorEvent{Op: op, Err: err})
}

func (s *serviceImpl) emitState(prev, cur State) {
	if prev == cur {
		return
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{Previous: prev, Current: cur})
	}
}

func (s *serviceImpl) emitClip(e ClipChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendClip(e)
	}
}

func (s *serviceImpl) emitPosition(e PositionChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPosition(e)
	}
}

func (s *serviceImpl) emitError(e ErrorEvent) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(e)
	}
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
