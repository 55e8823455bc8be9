package controllers

import "log/slog"

// Notifier surfaces transient, dismissible messages to the operator.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.Default()
	}
	return n.Logger
}

// Success logs msg at info level.
func (n LogNotifier) Success(msg string) { n.logger().Info(msg, "notification", "success") }

// Error logs msg at error level.
func (n LogNotifier) Error(msg string) { n.logger().Error(msg, "notification", "error") }

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}
