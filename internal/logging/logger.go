// Package logging provides a leveled, optionally coloured logger with an
// optional plain-text file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode controls ANSI colour output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Colour when stdout is a TTY and NO_COLOR is unset.
	ColorAlways ColorMode = "always" // Force colour on.
	ColorNever  ColorMode = "never"  // Plain text.
)

// ParseColorMode accepts auto, always or never; empty means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(s)) {
	case "", ColorAuto:
		return ColorAuto, nil
	case ColorAlways:
		return ColorAlways, nil
	case ColorNever:
		return ColorNever, nil
	}
	return "", fmt.Errorf("logging: invalid color mode %q (auto, always, never)", s)
}

type Options struct {
	Color   ColorMode
	File    string
	Verbose bool
}

const timeLayout = "2006-01-02 15:04:05"

var levelColors = map[string]lipgloss.Color{
	"INFO":    lipgloss.Color("12"),
	"SUCCESS": lipgloss.Color("10"),
	"WARN":    lipgloss.Color("11"),
	"ERROR":   lipgloss.Color("9"),
	"DEBUG":   lipgloss.Color("14"),
}

// Logger writes timestamped lines. ERROR goes to the error writer, all
// other levels to the output writer. Safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	file     *os.File
	styles   map[string]lipgloss.Style
	verbose  bool
	colorful bool
}

// New logs to stdout and stderr. Call Close when done if opts.File was set.
func New(opts Options) (*Logger, error) {
	return NewWithWriters(os.Stdout, os.Stderr, opts)
}

// NewWithWriters logs to the given writers.
func NewWithWriters(out, errOut io.Writer, opts Options) (*Logger, error) {
	l := &Logger{
		out:     out,
		errOut:  errOut,
		verbose: opts.Verbose,
		styles:  make(map[string]lipgloss.Style, len(levelColors)),
	}

	switch opts.Color {
	case ColorAlways:
		l.colorful = true
	case ColorNever:
		l.colorful = false
	default:
		l.colorful = isTerminal(out) && os.Getenv("NO_COLOR") == "" && strings.ToLower(os.Getenv("TERM")) != "dumb"
	}

	r := lipgloss.NewRenderer(out)
	if l.colorful {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	for level, c := range levelColors {
		l.styles[level] = r.NewStyle().Foreground(c).Bold(true)
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
	}
	return l, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

// Verbose reports whether DEBUG lines are emitted.
func (l *Logger) Verbose() bool {
	return l.verbose
}

func (l *Logger) line(level, text string) {
	ts := time.Now().Format(timeLayout)
	tag := "[" + level + "]"

	l.mu.Lock()
	defer l.mu.Unlock()

	out := l.out
	if level == "ERROR" {
		out = l.errOut
	}
	_, _ = io.WriteString(out, ts+" "+l.styles[level].Render(tag)+" "+text+"\n")
	if l.file != nil {
		_, _ = io.WriteString(l.file, ts+" "+tag+" "+text+"\n")
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", fmt.Sprintf(format, args...))
}

func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", fmt.Sprintf(format, args...))
}

// Error logs to the error writer.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", fmt.Sprintf(format, args...))
}

// Debug is a no-op unless the logger is verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.line("DEBUG", fmt.Sprintf(format, args...))
}
