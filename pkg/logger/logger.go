package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	tagColor   = color.New(color.FgCyan).SprintFunc()
	keyColor   = color.New(color.FgCyan).SprintFunc()
	sepColor   = color.New(color.FgHiBlack).SprintFunc()
	levelStyle = map[slog.Level]struct {
		paint func(a ...interface{}) string
		label string
	}{
		slog.LevelDebug: {color.New(color.FgHiBlack).SprintFunc(), "DEBUG"},
		slog.LevelInfo:  {color.New(color.FgGreen).SprintFunc(), "INFO "},
		slog.LevelWarn:  {color.New(color.FgYellow).SprintFunc(), "WARN "},
		slog.LevelError: {color.New(color.FgRed).SprintFunc(), "ERROR"},
	}
)

var Log *slog.Logger

type PrettyHandler struct {
	out        io.Writer
	level      slog.Leveler
	mu         *sync.Mutex
	timeFormat string
	attrs      []slog.Attr
}

func NewPrettyHandler(out io.Writer, level slog.Leveler, timeFormat string) *PrettyHandler {
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05"
	}
	return &PrettyHandler{
		out:        out,
		level:      level,
		mu:         &sync.Mutex{},
		timeFormat: timeFormat,
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	style, ok := levelStyle[r.Level]
	if !ok {
		style = levelStyle[slog.LevelInfo]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s %s %s",
		tagColor("[GATEWAY]"),
		r.Time.Format(h.timeFormat),
		sepColor("|"),
		style.paint(style.label),
		sepColor("|"),
		r.Message,
	)

	writeAttr := func(a slog.Attr) bool {
		fmt.Fprintf(&b, " %s=%v", keyColor(a.Key), a.Value.Any())
		return true
	}
	for _, a := range h.attrs {
		writeAttr(a)
	}
	r.Attrs(writeAttr)
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// WithGroup is a no-op; groups are flattened in pretty output.
func (h *PrettyHandler) WithGroup(string) slog.Handler {
	return h
}

// Setup installs the process logger. Terminals get the colored pretty
// handler, everything else gets JSON lines.
func Setup(level string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		handler = NewPrettyHandler(os.Stdout, lvl, "")
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

func init() {
	Setup("info")
}

func Info(msg string, args ...any) {
	Log.Info(msg, args...)
}

func Error(msg string, args ...any) {
	Log.Error(msg, args...)
}

func Debug(msg string, args ...any) {
	Log.Debug(msg, args...)
}

func Warn(msg string, args ...any) {
	Log.Warn(msg, args...)
}

func InfoWithDuration(msg string, start time.Time, args ...any) {
	args = append(args, "duration", time.Since(start).Round(time.Millisecond))
	Log.Info(msg, args...)
}

func ErrorWithDuration(msg string, start time.Time, args ...any) {
	args = append(args, "duration", time.Since(start).Round(time.Millisecond))
	Log.Error(msg, args...)
}
