package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusFadeDelay is how long a status message stays in the status bar
const statusFadeDelay = 5 * time.Second

// logRecordMsg carries a log record into the status bar
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// statusFadeMsg clears the status bar unless a newer message replaced
// the one it was scheduled for
type statusFadeMsg struct {
	seq int
}

// Sender is the part of tea.Program the handler needs
type Sender interface {
	Send(msg tea.Msg)
}

// StatusLogHandler is a slog.Handler that routes records at or above
// its level into a running bubbletea program, where they show up in the
// status bar. Records arriving before SetProgram are dropped.
//
// Handlers derived via WithAttrs/WithGroup share the program pointer,
// so a single SetProgram call reaches all of them.
type StatusLogHandler struct {
	level   slog.Level
	program *atomic.Pointer[Sender]
	attrs   []slog.Attr
	group   string
}

// NewStatusLogHandler creates a handler for records at or above level
func NewStatusLogHandler(level slog.Level) *StatusLogHandler {
	return &StatusLogHandler{
		level:   level,
		program: &atomic.Pointer[Sender]{},
	}
}

// SetProgram sets the program that receives log messages. Safe to call
// from any goroutine.
func (h *StatusLogHandler) SetProgram(program Sender) {
	h.program.Store(&program)
}

func (h *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as "message (key=value, ...)" and sends it
func (h *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	program := h.program.Load()
	if program == nil {
		return nil
	}

	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, h.formatAttr(attr))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, h.formatAttr(attr))
		return true
	})

	summary := record.Message
	if len(parts) > 0 {
		summary += " (" + strings.Join(parts, ", ") + ")"
	}

	(*program).Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

func (h *StatusLogHandler) formatAttr(attr slog.Attr) string {
	key := attr.Key
	if h.group != "" {
		key = h.group + "." + key
	}
	return fmt.Sprintf("%s=%s", key, attr.Value)
}

func (h *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := *h
	derived.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &derived
}

func (h *StatusLogHandler) WithGroup(name string) slog.Handler {
	derived := *h
	derived.attrs = append([]slog.Attr{}, h.attrs...)
	if derived.group != "" {
		derived.group += "." + name
	} else {
		derived.group = name
	}
	return &derived
}
