package core

// Logger is any service that can log & report application events.
// expected args fmt: error | map[string]interface{} | Identity
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// Identity identifies the session a log entry belongs to.
type Identity struct {
	ID    string
	Name  string
	Email string
}
