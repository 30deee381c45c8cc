package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// palette holds the colours used by Handler. A nil palette means plain text.
type palette struct {
	time  *color.Color
	key   *color.Color
	err   *color.Color
	level map[slog.Level]*color.Color
}

func newPalette() *palette {
	return &palette{
		time: color.New(color.FgHiBlack),
		key:  color.New(color.FgCyan),
		err:  color.New(color.FgRed),
		level: map[slog.Level]*color.Color{
			LevelTrace:      color.New(color.FgHiBlack),
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		},
	}
}

// levelColor picks the colour of the nearest standard level at or below l.
func (p *palette) levelColor(l slog.Level) *color.Color {
	for _, std := range []slog.Level{slog.LevelError, slog.LevelWarn, slog.LevelInfo, slog.LevelDebug} {
		if l >= std {
			return p.level[std]
		}
	}
	return p.level[LevelTrace]
}

// Handler is a slog.Handler for terminal output. Each record becomes one
// line: "3:04PM LEVEL message key=value ...". Colours are used only when the
// writer supports them, and error-valued attributes are shown in red.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	colors *palette

	// prefix holds the pre-rendered WithAttrs attributes.
	prefix string
	groups []string
}

// NewHandler creates a Handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
	if SupportsColor(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle renders r into a single write.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor(), r.Time.Format(time.Kitchen)))
		buf.WriteByte(' ')
	}

	// Pad before colouring so escape codes do not break alignment.
	level := fmt.Sprintf("%-5s", levelName(r.Level))
	if h.colors != nil {
		level = h.colors.levelColor(r.Level).Sprint(level)
	}
	buf.WriteString(level)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	buf.WriteString(h.prefix)
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.qualify(a))
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func levelName(l slog.Level) string {
	if l < slog.LevelDebug {
		return "TRACE"
	}
	return l.String()
}

func (h *Handler) timeColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.time
}

func (h *Handler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}

	value := a.Value.Resolve().Any()
	_, isErr := value.(error)
	text := fmt.Sprint(value)
	if strings.ContainsAny(text, " \t") {
		text = fmt.Sprintf("%q", text)
	}

	if h.colors != nil {
		a.Key = h.colors.key.Sprint(a.Key)
		if isErr {
			text = h.colors.err.Sprint(text)
		}
	}
	fmt.Fprintf(buf, " %s=%s", a.Key, text)
}

// qualify prefixes the attribute key with the handler's open groups.
func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	a.Key = strings.Join(h.groups, ".") + "." + a.Key
	return a
}

// WithAttrs returns a new Handler with the given attributes rendered after
// every message.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		h.writeAttr(&buf, h.qualify(a))
	}
	newH := *h
	newH.prefix = buf.String()
	return &newH
}

// WithGroup returns a new Handler with the given group name.
// Groups are rendered by prefixing attribute keys.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newH := *h
	newH.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &newH
}
