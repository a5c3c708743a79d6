// Package logging provides the logger used across logs-archiver and the
// rolling run-log files it writes.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Logger is the narrow logging surface the rest of the system depends on.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogLogger struct {
	s *slog.Logger
}

func (l slogLogger) Debug(msg string, args ...any) { l.s.Debug(msg, args...) }
func (l slogLogger) Info(msg string, args ...any)  { l.s.Info(msg, args...) }
func (l slogLogger) Warn(msg string, args ...any)  { l.s.Warn(msg, args...) }
func (l slogLogger) Error(msg string, args ...any) { l.s.Error(msg, args...) }

// filePrefix and fileExt name the per-run log files: logs-archiver_20060102-150405.log
const (
	filePrefix = "logs-archiver_"
	fileExt    = ".log"
	timeLayout = "20060102-150405"
)

// Options configures New.
type Options struct {
	Dir      string // directory for run-log files; empty means console only
	Disabled bool   // suppress the persisted log entirely
	Verbose  bool   // include debug-level detail
	Clock    func() time.Time
}

// New builds a Logger writing to stderr and, unless disabled, to a
// timestamp-named file under opts.Dir. The returned closer flushes and
// closes the file; it is a no-op for console-only loggers.
func New(opts Options) (Logger, func() error, error) {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closer := func() error { return nil }

	if !opts.Disabled && opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		name := filePrefix + opts.Clock().Format(timeLayout) + fileExt
		f, err := os.OpenFile(filepath.Join(opts.Dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening run log: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closer = f.Close
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slogLogger{s: slog.New(handler)}, closer, nil
}

// Nop discards everything. Used in tests.
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}
