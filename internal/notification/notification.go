package notification

import (
	"context"
	"log/slog"
)

const (
	// KindPasswordReset indicates a password-reset code delivery.
	KindPasswordReset = "password_reset"
)

// Message describes a notification payload.
type Message struct {
	Kind        string
	Destination string
	Body        string
}

// Notifier delivers notifications out-of-band. The reset flow currently also
// returns the code in the API response for the accompanying UI; a real
// deployment plugs a mail or SMS channel in here.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger. The body holds a one-time
// credential, so only its kind and destination are logged.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "kind", message.Kind, "destination", message.Destination)
	return nil
}
