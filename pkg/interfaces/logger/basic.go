package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level filters basic logger output.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// BasicLogger prints key=value log lines to a writer (stdout by default).
type BasicLogger struct {
	mu     *sync.Mutex
	out    io.Writer
	level  Level
	ctx    context.Context
	fields map[string]any
}

var _ Logger = (*BasicLogger)(nil)
var _ FieldsLogger = (*BasicLogger)(nil)

// Option configures a BasicLogger.
type Option func(*BasicLogger)

// WithWriter redirects output.
func WithWriter(w io.Writer) Option {
	return func(l *BasicLogger) {
		if w != nil {
			l.out = w
		}
	}
}

// WithLevel drops lines below level.
func WithLevel(level Level) Option {
	return func(l *BasicLogger) {
		l.level = level
	}
}

// New returns a basic logger that writes to stdout at info level.
func New(opts ...Option) *BasicLogger {
	l := &BasicLogger{
		mu:     &sync.Mutex{},
		out:    os.Stdout,
		level:  LevelInfo,
		ctx:    context.Background(),
		fields: make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Default returns the default basic logger implementation.
func Default() Logger {
	return New()
}

// WithFields returns a logger that includes structured fields on each log line.
func (l *BasicLogger) WithFields(fields map[string]any) Logger {
	if len(fields) == 0 {
		return l
	}
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	return next
}

func (l *BasicLogger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}
	next := l.clone()
	next.ctx = ctx
	return next
}

func (l *BasicLogger) Trace(msg string, args ...any) { l.log(LevelTrace, msg, args...) }
func (l *BasicLogger) Debug(msg string, args ...any) { l.log(LevelDebug, msg, args...) }
func (l *BasicLogger) Info(msg string, args ...any)  { l.log(LevelInfo, msg, args...) }
func (l *BasicLogger) Warn(msg string, args ...any)  { l.log(LevelWarn, msg, args...) }
func (l *BasicLogger) Error(msg string, args ...any) { l.log(LevelError, msg, args...) }

func (l *BasicLogger) log(level Level, msg string, args ...any) {
	if level < l.level {
		return
	}
	allArgs := append(fieldArgs(l.fields), args...)
	line := fmt.Sprintf("[%s] %s", levelNames[level], msg)
	if rendered := formatArgs(allArgs); rendered != "" {
		line += " " + rendered
	}
	l.mu.Lock()
	fmt.Fprintf(l.out, "%s\n", line)
	l.mu.Unlock()
}

func (l *BasicLogger) clone() *BasicLogger {
	out := &BasicLogger{
		mu:     l.mu,
		out:    l.out,
		level:  l.level,
		ctx:    l.ctx,
		fields: make(map[string]any, len(l.fields)),
	}
	for k, v := range l.fields {
		out.fields[k] = v
	}
	return out
}

func fieldArgs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]any, 0, len(keys)*2)
	for _, k := range keys {
		args = append(args, k, fields[k])
	}
	return args
}

func formatArgs(args []any) string {
	if len(args) == 0 {
		return ""
	}
	var parts []string
	for i := 0; i < len(args); {
		if key, ok := args[i].(string); ok && i+1 < len(args) {
			parts = append(parts, fmt.Sprintf("%s=%s", key, fmt.Sprint(args[i+1])))
			i += 2
			continue
		}
		parts = append(parts, fmt.Sprint(args[i]))
		i++
	}
	return strings.Join(parts, " ")
}
