// Package logging provides the leveled console logger used by the CLI.
// Writes are serialized so the logger can be shared with worker goroutines.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/arloliu/codecbench/internal/config"
	"github.com/arloliu/codecbench/internal/options"
)

// palette holds ANSI escape codes; every field is empty when color is off.
type palette struct {
	red, green, yellow, blue, cyan, reset string
}

var ansi = palette{
	red:    "\033[1;91m",
	green:  "\033[1;92m",
	yellow: "\033[1;93m",
	blue:   "\033[1;94m",
	cyan:   "\033[1;96m",
	reset:  "\033[0m",
}

// Logger provides leveled, optionally colored logging with an optional file sink.
type Logger struct {
	mu     sync.Mutex
	colors palette
	out    io.Writer
	errOut io.Writer
	file   *os.File
	now    func() time.Time
}

// Option configures a Logger.
type Option = options.Option[*Logger]

// WithOutput redirects normal and error output, e.g. for tests.
func WithOutput(out, errOut io.Writer) Option {
	return options.NoError(func(l *Logger) {
		l.out = out
		l.errOut = errOut
	})
}

// WithClock replaces the timestamp source.
func WithClock(now func() time.Time) Option {
	return options.NoError(func(l *Logger) {
		l.now = now
	})
}

// NewLogger initializes colors from cfg and optionally opens cfg.LogFile for
// appending. Call Close when done.
func NewLogger(cfg *config.Config, opts ...Option) (*Logger, error) {
	l := &Logger{out: os.Stdout, errOut: os.Stderr, now: time.Now}
	if err := options.Apply(l, opts...); err != nil {
		return nil, err
	}

	if colorEnabled(cfg.ColorMode, l.out) {
		l.colors = ansi
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}

	return l, nil
}

func colorEnabled(mode config.ColorMode, out io.Writer) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := out.(*os.File)

	return ok && isTerminal(f) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}

	return fi.Mode()&os.ModeCharDevice != 0
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil

	return err
}

// Writer returns the stream normal output goes to, for tables and reports.
func (l *Logger) Writer() io.Writer { return l.out }

func (l *Logger) line(level, color, text string) {
	ts := l.now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + level + "] " + text + "\n"

	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	if color != "" {
		_, _ = io.WriteString(out, ts+" "+color+"["+level+"]"+l.colors.reset+" "+text+"\n")
	} else {
		_, _ = io.WriteString(out, plain)
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...any) {
	l.line("INFO", l.colors.blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...any) {
	l.line("SUCCESS", l.colors.green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...any) {
	l.line("WARN", l.colors.yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to the error stream.
func (l *Logger) Error(format string, args ...any) {
	l.line("ERROR", l.colors.red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose.
func (l *Logger) Debug(verbose bool, format string, args ...any) {
	if !verbose {
		return
	}
	l.line("DEBUG", l.colors.cyan, fmt.Sprintf(format, args...))
}
