// Package logging builds the catalog's slog logger. Records go to a log
// file inside the project directory so the terminal UI stays clean, and
// optionally to extra handlers such as the status bar.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pluqqy/pluqqy-catalog/pkg/files"
	"github.com/pluqqy/pluqqy-catalog/pkg/models"
)

// ParseLevel maps a settings level name to a slog level. Unknown names
// fall back to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup opens the configured log file and returns a logger writing to it
// and to every handler in extra. The returned close function releases
// the file. Without a project directory the file handler is skipped.
func Setup(settings models.LogSettings, extra ...slog.Handler) (*slog.Logger, func() error, error) {
	handlers := make(Fanout, 0, len(extra)+1)
	closer := func() error { return nil }

	if files.ProjectExists() {
		path := settings.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(files.CatalogDir, path)
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file %s: %w", path, err)
		}
		handlers = append(handlers, NewFileHandler(file, ParseLevel(settings.Level)))
		closer = file.Close
	}

	handlers = append(handlers, extra...)
	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), closer, nil
	}
	return slog.New(handlers), closer, nil
}

// NewFileHandler returns the text handler used for the log file
func NewFileHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
}

// Fanout is a slog.Handler that sends each record to multiple
// underlying handlers. A record is enabled if any sub-handler is
// enabled for that level.
type Fanout []slog.Handler

func (handlers Fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (handlers Fanout) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (handlers Fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := make(Fanout, len(handlers))
	for i, handler := range handlers {
		derived[i] = handler.WithAttrs(attrs)
	}
	return derived
}

func (handlers Fanout) WithGroup(name string) slog.Handler {
	derived := make(Fanout, len(handlers))
	for i, handler := range handlers {
		derived[i] = handler.WithGroup(name)
	}
	return derived
}
