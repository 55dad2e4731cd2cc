package notify

const sinkBufferSize = 16

// Sink is a channel-backed Notifier for UI consumers that poll for
// toasts. Sends never block; when the buffer is full the oldest toast
// is dropped in favour of the newest.
type Sink struct {
	ch chan Toast
}

// NewSink creates a sink with a small buffer.
func NewSink() *Sink {
	return &Sink{ch: make(chan Toast, sinkBufferSize)}
}

// Notify enqueues a toast without blocking.
func (s *Sink) Notify(t Toast) {
	select {
	case s.ch <- t:
	default:
		select {
		case <-s.ch:
		default:
		}
		select {
		case s.ch <- t:
		default:
		}
	}
}

// C returns the receive side for consumers.
func (s *Sink) C() <-chan Toast {
	return s.ch
}
