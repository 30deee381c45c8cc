package logging

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
)

// MultiHandler dispatches records to multiple handlers.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler creates a new MultiHandler that dispatches to all provided handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled reports whether at least one of the underlying handlers is enabled for the given level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle dispatches the record to all enabled underlying handlers.
// Every handler sees its own clone of the record.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = errors.CombineErrors(errs, err)
		}
	}
	return errs
}

// WithAttrs returns a new MultiHandler where each underlying handler has the given attributes.
func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return NewMultiHandler(handlers...)
}

// WithGroup returns a new MultiHandler where each underlying handler has the given group.
func (h *MultiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return NewMultiHandler(handlers...)
}

// SetupOptions describes the CLI logging flags.
type SetupOptions struct {
	Level  slog.Level
	Format Format
	// Output receives console logs.
	Output io.Writer
	// File, when non-empty, additionally receives JSON logs (appended).
	File string
}

// Setup builds a logger for the CLI: console output in the requested format,
// plus a JSON file sink when opts.File is set. The returned close function
// releases the log file and is always non-nil.
func Setup(opts SetupOptions) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	primary := New(Config{Level: opts.Level, Format: opts.Format, Output: opts.Output}).Handler()
	if opts.File == "" {
		return slog.New(primary), noop, nil
	}

	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, noop, errors.Wrapf(err, "opening log file %s", opts.File)
	}

	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level})
	return slog.New(NewMultiHandler(primary, fileHandler)), f.Close, nil
}
