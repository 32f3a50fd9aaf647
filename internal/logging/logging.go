// Package logging builds the process logger shared by the CLI, the headless
// runner and the SSH server.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w with the given prefix and level name
// ("debug", "info", "warn", "error"). An empty level means info.
func New(w io.Writer, prefix, level string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(strings.ToLower(level))
		if err != nil {
			return nil, fmt.Errorf("logging: unknown level %q: %w", level, err)
		}
		lvl = parsed
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Stderr is New on os.Stderr, falling back to info on a bad level.
func Stderr(prefix, level string) *log.Logger {
	logger, err := New(os.Stderr, prefix, level)
	if err != nil {
		logger, _ = New(os.Stderr, prefix, "")
		logger.Warn("falling back to info level", "err", err)
	}
	return logger
}

// Discard returns a logger that drops everything. Tests and library
// callers that pass no logger get this one.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
