package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the lipgloss styles for one output.
type styles struct {
	time, key, str, num, source lipgloss.Style
	level                       map[Level]lipgloss.Style
}

func makeStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	level := func(c string) lipgloss.Style {
		return r.NewStyle().Bold(true).Width(5).Foreground(lipgloss.Color(c))
	}

	return styles{
		time:   r.NewStyle().Faint(true),
		key:    r.NewStyle().Foreground(lipgloss.Color("8")),
		str:    r.NewStyle().Foreground(lipgloss.Color("6")),
		num:    r.NewStyle().Foreground(lipgloss.Color("3")),
		source: r.NewStyle().Faint(true).Italic(true),
		level: map[Level]lipgloss.Style{
			LevelTrace: level("5"),
			LevelDebug: level("4"),
			LevelInfo:  level("2"),
			LevelWarn:  level("3"),
			LevelError: level("1"),
		},
	}
}

// prettyHandler writes human-oriented text records styled for a terminal.
// Multi-line values are written below their key, indented.
type prettyHandler struct {
	opts       slog.HandlerOptions
	formatTime FormatTime
	style      styles
	mu         *sync.Mutex
	w          io.Writer
	attrs      []slog.Attr
	group      string
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		formatTime: formatTime,
		style:      makeStyles(w),
		mu:         &sync.Mutex{},
		w:          w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() && h.formatTime != nil {
		if s := h.formatTime(r.Time); s != "" {
			buf.WriteString(h.style.time.Render(s))
			buf.WriteByte(' ')
		}
	}

	buf.WriteString(h.levelStyle(Level(r.Level)).Render(strings.ToUpper(Level(r.Level).String())))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			buf.WriteByte(' ')
			buf.WriteString(h.style.source.Render(fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	var tail []string

	for _, a := range h.attrs {
		tail = h.appendAttr(&buf, tail, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		tail = h.appendAttr(&buf, tail, h.group, a)

		return true
	})

	buf.WriteByte('\n')

	for _, t := range tail {
		buf.WriteString(t)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	c.attrs = append(c.attrs, h.attrs...)

	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}

		c.attrs = append(c.attrs, a)
	}

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	if c.group != "" {
		c.group += "."
	}

	c.group += name

	return &c
}

func (h *prettyHandler) levelStyle(l Level) lipgloss.Style {
	if s, ok := h.style.level[l]; ok {
		return s
	}

	return h.style.level[LevelInfo]
}

// appendAttr writes a to buf, or appends it to tail if its value spans
// multiple lines. Groups are flattened with dotted keys.
func (h *prettyHandler) appendAttr(
	buf *bytes.Buffer,
	tail []string,
	prefix string,
	a slog.Attr,
) []string {
	a.Value = a.Value.Resolve()

	if rep := h.opts.ReplaceAttr; rep != nil && a.Value.Kind() != slog.KindGroup {
		var groups []string
		if prefix != "" {
			groups = strings.Split(prefix, ".")
		}

		a = rep(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return tail
	}

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, g := range a.Value.Group() {
			tail = h.appendAttr(buf, tail, key, g)
		}

		return tail
	}

	val, style := h.value(a.Value)

	if strings.Contains(val, "\n") {
		var sb strings.Builder

		sb.WriteString("  ")
		sb.WriteString(h.style.key.Render(key + ":"))
		sb.WriteByte('\n')

		for line := range strings.SplitSeq(strings.TrimRight(val, "\n"), "\n") {
			sb.WriteString("    ")
			sb.WriteString(line)
			sb.WriteByte('\n')
		}

		return append(tail, sb.String())
	}

	buf.WriteByte(' ')
	buf.WriteString(h.style.key.Render(key + "="))
	buf.WriteString(style.Render(val))

	return tail
}

func (h *prettyHandler) value(v slog.Value) (string, lipgloss.Style) {
	switch v.Kind() {
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10), h.style.num

	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10), h.style.num

	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64), h.style.num

	case slog.KindBool:
		return strconv.FormatBool(v.Bool()), h.style.num

	case slog.KindDuration:
		return v.Duration().String(), h.style.num

	default:
		if err, ok := v.Any().(error); ok {
			return err.Error(), h.style.str
		}

		return v.String(), h.style.str
	}
}
