package portal

type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a fire-and-forget notification for the user of a session.
type Toast struct {
	Level   ToastLevel
	Message string
}

// Notifier is a toast sink. It must not block and its outcome is never used for control flow.
type Notifier interface {
	Notify(sessionID string, toast Toast)
}

type NopNotifier struct{}

func (NopNotifier) Notify(string, Toast) {}
