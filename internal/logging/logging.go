package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level controls which messages a logger emits.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level. Unknown values mean info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Logger is the sink the action handlers and the shell report through.
// Fields are alternating key/value pairs.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// WriterLogger writes timestamped key=value lines to an io.Writer.
// Stdout is not a usable sink while the program owns the terminal, so the
// usual writer is a file; see OpenFile.
type WriterLogger struct {
	mu    sync.Mutex
	w     io.Writer
	level Level
}

func New(w io.Writer, level Level) *WriterLogger {
	return &WriterLogger{w: w, level: level}
}

// OpenFile opens (creating directories as needed) an append-only log file
// and returns a logger writing to it. The caller owns closing the file.
func OpenFile(path string, level Level) (*WriterLogger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return New(f, level), f, nil
}

func (l *WriterLogger) Debug(msg string, fields ...any) { l.log(LevelDebug, msg, fields) }
func (l *WriterLogger) Info(msg string, fields ...any)  { l.log(LevelInfo, msg, fields) }
func (l *WriterLogger) Warn(msg string, fields ...any)  { l.log(LevelWarn, msg, fields) }

func (l *WriterLogger) Error(msg string, err error, fields ...any) {
	l.log(LevelError, msg, append([]any{"error", err}, fields...))
}

func (l *WriterLogger) log(level Level, msg string, fields []any) {
	if level < l.level {
		return
	}
	line := fmt.Sprintf("%s %s %s", time.Now().Format("2006-01-02 15:04:05"), level, msg)
	if kv := formatFields(fields); kv != "" {
		line += " " + kv
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, line)
}

func formatFields(fields []any) string {
	if len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields)/2)
	for i := 0; i+1 < len(fields); i += 2 {
		parts = append(parts, fmt.Sprintf("%v=%v", fields[i], fields[i+1]))
	}
	return strings.Join(parts, " ")
}

// Nop discards everything. Used where a sink is required but unwanted.
func Nop() Logger { return nopLogger{} }

type nopLogger struct{}

func (nopLogger) Debug(string, ...any)        {}
func (nopLogger) Info(string, ...any)         {}
func (nopLogger) Warn(string, ...any)         {}
func (nopLogger) Error(string, error, ...any) {}

// Entry is one recorded log call.
type Entry struct {
	Level  Level
	Msg    string
	Err    error
	Fields []any
}

// Recorder captures entries for assertions in tests.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Debug(msg string, fields ...any) { r.record(LevelDebug, msg, nil, fields) }
func (r *Recorder) Info(msg string, fields ...any)  { r.record(LevelInfo, msg, nil, fields) }
func (r *Recorder) Warn(msg string, fields ...any)  { r.record(LevelWarn, msg, nil, fields) }

func (r *Recorder) Error(msg string, err error, fields ...any) {
	r.record(LevelError, msg, err, fields)
}

func (r *Recorder) record(level Level, msg string, err error, fields []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Err: err, Fields: fields})
}

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
