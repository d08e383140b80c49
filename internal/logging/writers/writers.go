// Package writers opens log destinations named in configuration.
package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind is the destination family of an output string.
type Kind string

const (
	KindStdout Kind = "stdout"
	KindStderr Kind = "stderr"
	KindFile   Kind = "file"
)

const filePrefix = "file://"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Open returns a writer for output:
//   - "stdout" or "" writes to os.Stdout
//   - "stderr" writes to os.Stderr
//   - "file:///var/log/x.log" or any path containing a separator appends to
//     that file, creating parent directories
//
// Closing the standard streams is a no-op.
func Open(output string) (io.WriteCloser, error) {
	switch ParseKind(output) {
	case KindStdout:
		return nopCloser{os.Stdout}, nil
	case KindStderr:
		return nopCloser{os.Stderr}, nil
	}

	path, ok := filePath(output)
	if !ok {
		return nil, fmt.Errorf("unsupported output format: %s", output)
	}
	return openFile(path)
}

// ParseKind classifies an output string without opening it.
func ParseKind(output string) Kind {
	switch output {
	case "", "stdout":
		return KindStdout
	case "stderr":
		return KindStderr
	default:
		return KindFile
	}
}

func filePath(output string) (string, bool) {
	if rest, ok := strings.CutPrefix(output, filePrefix); ok {
		return rest, rest != ""
	}
	if strings.Contains(output, "://") {
		return "", false
	}
	return output, strings.ContainsAny(output, `/\`)
}

func openFile(path string) (io.WriteCloser, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return f, nil
}
