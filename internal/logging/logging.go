//go:build !ios && !android && (amd64 || arm64)

// Package logging holds the process-wide structured logger used by xpgo.
//
// The default handler formats records with tint (colors disabled) and
// forwards each line to the host debug log once a sink is installed. Before
// that, lines go to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lmittmann/tint"
)

// EnvLogLevel names the environment variable holding the initial log level.
const EnvLogLevel = "XPGO_LOG_LEVEL"

var (
	level  slog.LevelVar
	logger atomic.Pointer[slog.Logger]
	out    = &hostWriter{fallback: os.Stderr}
)

func init() {
	level.Set(slog.LevelInfo)
	if s := os.Getenv(EnvLogLevel); s != "" {
		if l, err := ParseLevel(s); err == nil {
			level.Set(l)
		}
	}
	logger.Store(NewLogger(out, &level))
}

// NewLogger returns a logger in the xpgo format writing to w.
func NewLogger(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      lvl,
		NoColor:    true,
		TimeFormat: time.TimeOnly,
	})).With("lib", "xpgo")
}

// Logger returns the current process-wide logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the process-wide logger. A nil logger restores the default.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = NewLogger(out, &level)
	}
	logger.Store(l)
}

// SetLevel sets the minimum level of the default logger.
func SetLevel(l slog.Level) {
	level.Set(l)
}

// Level returns the minimum level of the default logger.
func Level() slog.Level {
	return level.Level()
}

// ParseLevel parses debug, info, warn or error (case-insensitive).
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("xpgo: unknown log level %q", s)
}

// SetSink routes the default logger's output to fn, one call per line.
// A nil fn routes output back to stderr.
func SetSink(fn func(line string)) {
	out.mu.Lock()
	defer out.mu.Unlock()
	out.sink = fn
}

type hostWriter struct {
	mu       sync.Mutex
	sink     func(string)
	fallback io.Writer
}

func (w *hostWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sink == nil {
		return w.fallback.Write(p)
	}
	// The host debug log takes C strings.
	w.sink(strings.ReplaceAll(string(p), "\x00", `\0`))
	return len(p), nil
}
