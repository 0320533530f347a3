// Package notify is the sink the editor glue reports user-facing outcomes to.
package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Severity classifies a notification.
type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Warning Severity = "warning"
	Error   Severity = "error"
)

// Notifier receives user-facing messages.
type Notifier interface {
	Notify(message string, severity Severity)
}

// LogNotifier writes notifications to a logrus logger.
type LogNotifier struct {
	Logger logrus.FieldLogger
}

// NewLogNotifier returns a LogNotifier writing to logger.
func NewLogNotifier(logger logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{Logger: logger}
}

func (n *LogNotifier) Notify(message string, severity Severity) {
	entry := n.Logger.WithField("severity", string(severity))
	switch severity {
	case Error:
		entry.Error(message)
	case Warning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// Notification is a recorded message.
type Notification struct {
	Message  string
	Severity Severity
}

// Recorder keeps every notification in memory. It is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	list []Notification
}

func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, Notification{Message: message, Severity: severity})
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.list))
	copy(out, r.list)
	return out
}

// Last returns the most recent notification; ok is false if there is none.
func (r *Recorder) Last() (n Notification, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.list) == 0 {
		return Notification{}, false
	}
	return r.list[len(r.list)-1], true
}
