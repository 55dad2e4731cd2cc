package notify

// Stub is a Notifier that discards all toasts. Used where no display
// surface is attached (tests, headless runs).
type Stub struct{}

// Notify discards the toast.
func (Stub) Notify(Toast) {}

var _ Notifier = Stub{}
