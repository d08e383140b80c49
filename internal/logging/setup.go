// Package logging builds the slog handlers used by the portalscripts binary.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// levelSpec is the parsed form of a configured level name.
type levelSpec struct {
	level     slog.Level
	caller    bool
	timestamp bool
}

// parseLevel maps a level name to handler settings. "trace" is debug output
// with source locations. Unknown names fall back to info.
func parseLevel(name string) levelSpec {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "trace":
		return levelSpec{level: slog.LevelDebug, caller: true, timestamp: true}
	case "debug":
		return levelSpec{level: slog.LevelDebug, timestamp: true}
	case "warn", "warning":
		return levelSpec{level: slog.LevelWarn}
	case "error":
		return levelSpec{level: slog.LevelError}
	default:
		return levelSpec{level: slog.LevelInfo}
	}
}

// SetupHandlerText returns a charmbracelet/log handler writing to writer,
// or stderr when writer is nil.
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}
	ls := parseLevel(logLevel)

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: ls.timestamp,
		ReportCaller:    ls.caller,
		Level:           log.Level(ls.level),
	})
}

// SetupHandlerJSON returns a JSON handler writing to writer, or stdout when
// writer is nil.
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stdout
	}
	ls := parseLevel(logLevel)

	return slog.NewJSONHandler(writer, &slog.HandlerOptions{
		Level:     ls.level,
		AddSource: ls.caller,
	})
}

// SetupHandler picks the text or JSON handler by format name. An empty
// format means text.
func SetupHandler(format, logLevel string, writer io.Writer) (slog.Handler, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text", "txt":
		return SetupHandlerText(logLevel, writer), nil
	case "json":
		return SetupHandlerJSON(logLevel, writer), nil
	default:
		return nil, fmt.Errorf("unknown log format: %s", format)
	}
}
