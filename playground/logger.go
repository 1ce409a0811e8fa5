package playground

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Logger is a minimal logging interface accepted by the client.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Info(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// noopLogger discards all logs.
type noopLogger struct{}

func (noopLogger) Debug(string, map[string]any) {}
func (noopLogger) Info(string, map[string]any)  {}
func (noopLogger) Warn(string, map[string]any)  {}
func (noopLogger) Error(string, map[string]any) {}

// NoopLogger returns a Logger that discards everything.
func NoopLogger() Logger { return noopLogger{} }

// stdLogger adapts a *log.Logger to the Logger interface.
type stdLogger struct {
	l *log.Logger
}

// NewStdLogger wraps a standard library logger.
func NewStdLogger(l *log.Logger) Logger { return stdLogger{l: l} }

func (s stdLogger) Debug(msg string, fields map[string]any) { s.print("DEBUG", msg, fields) }
func (s stdLogger) Info(msg string, fields map[string]any)  { s.print("INFO", msg, fields) }
func (s stdLogger) Warn(msg string, fields map[string]any)  { s.print("WARN", msg, fields) }
func (s stdLogger) Error(msg string, fields map[string]any) { s.print("ERROR", msg, fields) }

func (s stdLogger) print(level, msg string, fields map[string]any) {
	if len(fields) == 0 {
		s.l.Printf("%s %s", level, msg)
		return
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, fields[k])
	}
	s.l.Printf("%s %s%s", level, msg, b.String())
}
