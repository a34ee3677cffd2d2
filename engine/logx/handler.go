package logx

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// handler writes one line per record: time, padded level, message, then key=value pairs.
type handler struct {
	mu    *sync.Mutex
	w     io.Writer
	out   *termenv.Output
	level slog.Leveler

	// preformatted attrs from WithAttrs, already group-prefixed
	attrs  []byte
	prefix string
}

var _ slog.Handler = &handler{}

// NewHandler returns a text handler whose level tag is colored through out.
// With an Ascii profile (pipes, files, NO_COLOR) the level is written plain.
//
// Parameters:
//   - w: the destination
//   - level: the minimum level; nil means slog.LevelInfo
//   - out: the termenv output used to pick colors, nil disables color
//
// Returns:
//   - slog.Handler: the handler
func NewHandler(w io.Writer, level slog.Leveler, out *termenv.Output) slog.Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &handler{mu: &sync.Mutex{}, w: w, out: out, level: level}
}

func (h *handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	if !r.Time.IsZero() {
		buf.WriteString(r.Time.Format(time.TimeOnly))
		buf.WriteByte(' ')
	}
	buf.WriteString(colorLevel(h.out, r.Level))
	buf.WriteByte(' ')
	buf.WriteString(r.Message)
	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var buf bytes.Buffer
	buf.Write(h.attrs)
	for _, a := range attrs {
		appendAttr(&buf, h.prefix, a)
	}
	c := *h
	c.attrs = buf.Bytes()
	return &c
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func appendAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, prefix, ga)
		}
		return
	}
	buf.WriteByte(' ')
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteByte('=')
	v := a.Value.String()
	if v == "" || strings.ContainsAny(v, " =\"\t\n") {
		v = strconv.Quote(v)
	}
	buf.WriteString(v)
}

// colorLevel renders the level tag padded to five columns.
func colorLevel(out *termenv.Output, lvl slog.Level) string {
	name := lvl.String()
	if pad := 5 - len(name); pad > 0 {
		name += strings.Repeat(" ", pad)
	}
	if out == nil || out.Profile == termenv.Ascii {
		return name
	}
	var code string
	switch {
	case lvl >= slog.LevelError:
		code = "1"
	case lvl >= slog.LevelWarn:
		code = "3"
	case lvl >= slog.LevelInfo:
		code = "4"
	default:
		code = "5"
	}
	return out.String(name).Foreground(out.Color(code)).Bold().String()
}
