// Package logging owns the process logger. The terminal belongs to the UI
// while it runs, so nothing is written unless a log file is configured.
package logging

import (
	"fmt"
	"io"
	"os"

	clog "github.com/charmbracelet/log"
)

// L is the package-level logger. It discards output until Setup is called
// with a file path.
var L = clog.New(io.Discard)

// Setup points L at path using level ("debug", "info", "warn", "error").
// An empty path keeps the logger silent. The returned close func is never nil.
func Setup(path string, level string) (func() error, error) {
	lvl := clog.InfoLevel
	if level != "" {
		parsed, err := clog.ParseLevel(level)
		if err != nil {
			return noopClose, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	if path == "" {
		L = clog.New(io.Discard)
		return noopClose, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return noopClose, fmt.Errorf("opening log file: %w", err)
	}
	L = clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		Prefix:          "docbook",
		Level:           lvl,
	})
	return f.Close, nil
}

func noopClose() error { return nil }

// Debugf logs a debug-level formatted message.
func Debugf(format string, v ...interface{}) {
	L.Debug(fmt.Sprintf(format, v...))
}

// Infof logs an info-level formatted message.
func Infof(format string, v ...interface{}) {
	L.Info(fmt.Sprintf(format, v...))
}

// Warnf logs a warning-level formatted message.
func Warnf(format string, v ...interface{}) {
	L.Warn(fmt.Sprintf(format, v...))
}

// Errorf logs an error-level formatted message.
func Errorf(format string, v ...interface{}) {
	L.Error(fmt.Sprintf(format, v...))
}
