// Package logging provides the leveled console+file logger used by every
// repair phase. Console output is optionally colored; file output is
// fire-and-forget and never fails the caller.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Level classifies a log line.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelOK
	LevelErr
)

// String returns the fixed-width tag written to both sinks.
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelOK:
		return "OK"
	case LevelErr:
		return "ERR"
	default:
		return "INFO"
	}
}

// Logger writes leveled messages to the console and, asynchronously, to an
// append-only log file. File write failures are swallowed: losing a log line
// must never abort a repair run.
type Logger struct {
	console io.Writer
	color   bool
	profile termenv.Profile

	path    string
	fileCh  chan string
	done    chan struct{}
	closeMu sync.Mutex
	closed  bool
}

// Options configures a Logger.
type Options struct {
	// Console receives the human-facing lines. Defaults to os.Stdout.
	Console io.Writer

	// Path is the log file location. Empty disables the file sink.
	Path string

	// Color enables ANSI styling of the level tag on the console sink.
	Color bool
}

// New opens the log file (append, create) and starts the drain goroutine.
// A file that cannot be opened degrades to console-only logging rather than
// returning an error; the caller has already validated directory
// writability.
func New(opts Options) *Logger {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}

	l := &Logger{
		console: console,
		color:   opts.Color,
		profile: termenv.ColorProfile(),
		path:    opts.Path,
	}

	if opts.Path != "" {
		if f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644); err == nil {
			l.fileCh = make(chan string, 256)
			l.done = make(chan struct{})
			go l.drain(f)
		}
	}
	return l
}

// drain is the single writer of the log file. It exits when the channel is
// closed, syncing and closing the file so Close can guarantee a flush.
func (l *Logger) drain(f *os.File) {
	defer close(l.done)
	defer f.Close()
	for line := range l.fileCh {
		// Errors are deliberately dropped; see package comment.
		_, _ = f.WriteString(line)
	}
	_ = f.Sync()
}

// Path returns the log file location ("" when the file sink is disabled).
func (l *Logger) Path() string { return l.path }

// Close flushes pending file writes and stops the drain goroutine.
// Safe to call more than once.
func (l *Logger) Close() {
	l.closeMu.Lock()
	defer l.closeMu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.fileCh != nil {
		close(l.fileCh)
		<-l.done
	}
}

// Log emits one line at the given level to both sinks.
func (l *Logger) Log(level Level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	now := time.Now().Format("2006-01-02 15:04:05")

	fmt.Fprintf(l.console, "%s %s\n", l.tag(level), msg)

	if l.fileCh == nil {
		return
	}
	l.closeMu.Lock()
	defer l.closeMu.Unlock()
	if l.closed {
		return
	}
	select {
	case l.fileCh <- fmt.Sprintf("%s [%s] %s\n", now, level, msg):
	default:
		// Buffer full: drop rather than block the phase.
	}
}

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...any) { l.Log(LevelInfo, format, args...) }

// Warnf logs at WARN.
func (l *Logger) Warnf(format string, args ...any) { l.Log(LevelWarn, format, args...) }

// Okf logs at OK.
func (l *Logger) Okf(format string, args ...any) { l.Log(LevelOK, format, args...) }

// Errf logs at ERR.
func (l *Logger) Errf(format string, args ...any) { l.Log(LevelErr, format, args...) }

// tag renders the bracketed level marker, styled when color is on.
func (l *Logger) tag(level Level) string {
	plain := fmt.Sprintf("[%s]", level)
	if !l.color {
		return plain
	}
	s := termenv.String(plain)
	switch level {
	case LevelOK:
		s = s.Foreground(l.profile.Color("2")) // green
	case LevelWarn:
		s = s.Foreground(l.profile.Color("3")) // yellow
	case LevelErr:
		s = s.Foreground(l.profile.Color("1")).Bold() // red
	default:
		s = s.Foreground(l.profile.Color("6")) // cyan
	}
	return s.String()
}
