package wizard

// Notifier is the toast surface the wizard reports outcomes to. Calls are
// fire-and-forget; the wizard never waits on an acknowledgment.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(string) {}
func (NopNotifier) Error(string) {}
