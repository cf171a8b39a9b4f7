// Package notify defines the delivery capability the scheduler fires
// reminders through. Actual toast/desktop rendering is the host
// application's concern; the core only decides that and what to show.
package notify

import "log/slog"

// Notifier delivers a single reminder. Delivery failures are the caller's
// to log and ignore; the scheduler never retries.
type Notifier interface {
	Notify(title, body string) error
}

// LogNotifier writes reminders to a structured logger. It is the default
// delivery path when no desktop integration is wired in.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) Notify(title, body string) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("reminder", "title", title, "body", body)
	return nil
}
