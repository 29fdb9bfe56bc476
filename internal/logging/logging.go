// Package logging builds the application logger from level and format
// strings as they arrive from flags or the config file.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Log formats accepted by New.
const (
	FormatText   = "text"
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

var (
	// ErrInvalidLevel indicates an unknown level name.
	ErrInvalidLevel = errors.New("invalid log level")
	// ErrInvalidFormat indicates an unknown format name.
	ErrInvalidFormat = errors.New("invalid log format")
)

// New creates a logger writing to w.
func New(w io.Writer, level, format string) (*log.Logger, error) {
	lvl, err := GetLevel(level)
	if err != nil {
		return nil, err
	}
	formatter, err := GetFormatter(format)
	if err != nil {
		return nil, err
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter,
		ReportTimestamp: formatter != log.TextFormatter,
		Prefix:          "csvdesk",
	}), nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// GetLevel parses a level name. Empty means warn.
func GetLevel(level string) (log.Level, error) {
	switch strings.ToLower(level) {
	case "":
		return log.WarnLevel, nil
	case "debug", "trace":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	case "fatal", "panic":
		return log.FatalLevel, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
	}
}

// GetFormatter parses a format name. Empty means text.
func GetFormatter(format string) (log.Formatter, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return log.TextFormatter, nil
	case FormatLogfmt:
		return log.LogfmtFormatter, nil
	case FormatJSON:
		return log.JSONFormatter, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, format)
	}
}
