//go:build !ios && !android && (amd64 || arm64)

package xpgo

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/obinnaokechukwu/xpgo/internal/bindings"
	"github.com/obinnaokechukwu/xpgo/internal/handles"
	"github.com/obinnaokechukwu/xpgo/internal/logging"
	"github.com/obinnaokechukwu/xpgo/xputil"
)

// LogLevel is the minimum level of xpgo's default logger.
type LogLevel int

const (
	LogDebug LogLevel = LogLevel(slog.LevelDebug)
	LogInfo  LogLevel = LogLevel(slog.LevelInfo)
	LogWarn  LogLevel = LogLevel(slog.LevelWarn)
	LogError LogLevel = LogLevel(slog.LevelError)
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch {
	case l <= LogDebug:
		return "debug"
	case l <= LogInfo:
		return "info"
	case l <= LogWarn:
		return "warn"
	default:
		return "error"
	}
}

// ParseLogLevel parses debug, info, warn or error.
func ParseLogLevel(s string) (LogLevel, error) {
	l, err := logging.ParseLevel(s)
	return LogLevel(l), err
}

// SetLogLevel sets the minimum level of the default logger. The initial
// level comes from XPGO_LOG_LEVEL, or info.
func SetLogLevel(level LogLevel) {
	logging.SetLevel(slog.Level(level))
}

// GetLogLevel returns the minimum level of the default logger.
func GetLogLevel() LogLevel {
	return LogLevel(logging.Level())
}

// SetLogger replaces the logger xpgo writes to. Pass nil to restore the
// default, which writes to the host log once Init has run.
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Logger returns the logger xpgo writes to. Plugins may share it.
func Logger() *slog.Logger {
	return logging.Logger()
}

// DebugString writes msg to the host log (Log.txt) verbatim.
func DebugString(msg string) error {
	if _, err := xputil.CString(msg); err != nil {
		return xputil.NewError(xputil.KindInvalidIdentifier, "xpgo.DebugString", "", err)
	}
	api, err := bindings.Current()
	if err != nil {
		return err
	}
	api.DebugString(msg)
	return nil
}

// DebugStringf formats according to a format specifier and writes the
// result to the host log.
func DebugStringf(format string, args ...any) error {
	return DebugString(fmt.Sprintf(format, args...))
}

// ErrorHandler receives host API misuse reports.
type ErrorHandler func(message string)

var (
	errorHandlerMu sync.Mutex
	errorHandler   ErrorHandler
)

// SetErrorHandler installs fn as the host error callback. The host calls
// it when the plugin misuses the SDK, which is usually a bug worth logging.
// Pass nil to remove it.
func SetErrorHandler(fn ErrorHandler) error {
	api, err := bindings.Current()
	if err != nil {
		return err
	}

	errorHandlerMu.Lock()
	defer errorHandlerMu.Unlock()

	errorHandler = fn
	if fn == nil {
		api.SetErrorCallback(0)
		return nil
	}
	api.SetErrorCallback(api.Callback(errorCallbackTrampoline))
	return nil
}

// errorCallbackTrampoline is called by the host and forwards to the Go handler.
func errorCallbackTrampoline(msg *byte) {
	errorHandlerMu.Lock()
	fn := errorHandler
	errorHandlerMu.Unlock()

	if fn == nil {
		return
	}
	s, err := xputil.GoString(msg, 0)
	if err != nil {
		logging.Logger().Warn("host error message is not valid UTF-8", "err", err)
		return
	}
	handles.Guard("error handler", func() { fn(s) })
}
