package logger

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/pyman/internal/ui/output"
	"go.trai.ch/pyman/internal/ui/style"
)

// chainKey carries the flattened error chain of an Error record.
const chainKey = "chain"

// consoleHandler renders records for a terminal. A record carrying an error chain becomes a
// block: a red header tagged with the failing project, then muted metadata and the causes.
type consoleHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
}

func newConsoleHandler(w io.Writer, level slog.Leveler) *consoleHandler {
	return &consoleHandler{out: output.New(w), level: level}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	var chain []errorEntry
	extra := make([]string, 0, len(h.attrs)+r.NumAttrs())
	collect := func(a slog.Attr) bool {
		if entries, ok := a.Value.Any().([]errorEntry); ok && a.Key == chainKey {
			chain = entries
			return true
		}
		extra = append(extra, a.Key+"="+a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		collect(a)
	}
	r.Attrs(collect)

	if len(chain) > 0 {
		return h.writeChain(chain)
	}

	line := r.Message
	var color termenv.Color = termenv.RGBColor(string(style.Slate))
	switch {
	case r.Level >= slog.LevelError:
		line = style.Cross + " " + line
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		line = style.Warning + " " + line
		color = termenv.RGBColor(string(style.Yellow))
	}
	if len(extra) > 0 {
		line += " " + strings.Join(extra, " ")
	}

	_, err := h.out.WriteString(h.out.String(line).Foreground(color).String() + "\n")
	return err
}

func (h *consoleHandler) writeChain(entries []errorEntry) error {
	header := style.Cross + " "
	if project := chainProject(entries); project != "" {
		header += "[" + project + "] "
	}

	lines := strings.Split(formatErrorEntries(entries), "\n")
	muted := termenv.RGBColor(string(style.Slate))

	var b strings.Builder
	b.WriteString(h.out.String(header + lines[0]).Foreground(termenv.RGBColor(string(style.Red))).Bold().String())
	b.WriteByte('\n')
	for _, line := range lines[1:] {
		if strings.HasPrefix(strings.TrimSpace(line), style.Arrow) {
			b.WriteString(line)
		} else if line != "" {
			b.WriteString(h.out.String(line).Foreground(muted).String())
		}
		b.WriteByte('\n')
	}

	_, err := h.out.WriteString(b.String())
	return err
}

// chainProject returns the first project named anywhere in the chain.
func chainProject(entries []errorEntry) string {
	for _, e := range entries {
		if p, ok := e.metadata["project"].(string); ok && p != "" {
			return p
		}
	}
	return ""
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &consoleHandler{
		out:   h.out,
		level: h.level,
		attrs: append(h.attrs[:len(h.attrs):len(h.attrs)], attrs...),
	}
}

// WithGroup keeps attributes flat; pyman never opens groups.
func (h *consoleHandler) WithGroup(_ string) slog.Handler {
	return h
}
