// Package notify provides the user-visible toast surface. Playback
// failures are reported here exactly once and never propagate as panics
// into UI control flow.
package notify

// Level represents toast severity.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Toast is one short user-visible message.
type Toast struct {
	Level   Level
	Message string
}

// Notifier receives toasts for display.
type Notifier interface {
	Notify(t Toast)
}

// Func adapts a function to the Notifier interface.
type Func func(t Toast)

// Notify calls f(t).
func (f Func) Notify(t Toast) { f(t) }
