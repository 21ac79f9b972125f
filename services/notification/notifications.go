package notification

import (
	"github.com/VeloPay/VeloPay-Console/services/monitoring/logging"
)

// Notifier surfaces user-visible messages (the toast seam). Views and forms
// depend on the interface so tests can capture what would be shown.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier writes notifications to the structured logger. It stands in
// for a real toast surface when the views run headless.
type LogNotifier struct {
	logger *logging.Logger
}

func NewLogNotifier(logger *logging.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(message string) {
	n.logger.WithField("kind", "success").Info(message)
}

func (n *LogNotifier) Error(message string) {
	n.logger.WithField("kind", "error").Error(message)
}
