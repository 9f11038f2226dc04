// Package notify defines the user-notification contract. Every
// terminal failure path in the request pipeline produces exactly one
// user-visible message through a Notifier.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Notifier surfaces a failure message to the user.
type Notifier interface {
	Error(message string)
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Error logs the message at error level.
func (n *LogNotifier) Error(message string) {
	n.logger.Error(message)
}

// ConsoleNotifier writes notifications as plain lines, for interactive use.
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to w.
func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

// Error writes the message as a single line.
func (n *ConsoleNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "error: %s\n", message)
}

// Compile-time checks.
var (
	_ Notifier = (*LogNotifier)(nil)
	_ Notifier = (*ConsoleNotifier)(nil)
)
