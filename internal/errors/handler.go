// Package errors routes user-facing messages to the CLI or the watch UI and
// turns engine errors into short descriptions.
package errors

import (
	"sync"
)

// ErrorHandler is the interface for error handling.
// Different implementations can handle errors differently based on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput prints leveled messages.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages through a ColorOutput. Calls are serialized
// so lines from concurrent callers never interleave.
type CLIHandler struct {
	colors ColorOutput
	mu     sync.Mutex
}

func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colors.Success(msg)
}

// Report sends err to h as a warning when it is a lookup miss the user can
// correct, and as an error otherwise, followed by its hint. A nil err is
// ignored.
func Report(h ErrorHandler, err error) {
	if err == nil {
		return
	}
	if IsNotFound(err) {
		h.Warning(Describe(err))
	} else {
		h.Error(Describe(err))
	}
	if hint := Hint(err); hint != "" {
		h.Info(hint)
	}
}
