package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used across the calculator. Structured
// fields are preferred; Printf and Println exist for call sites that
// bridge from printf-style code.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Printf(format string, args ...interface{})
	Println(args ...interface{})
}

// Field is a single structured logging key/value pair.
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Uint64 creates a uint64 field.
func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

// Float64 creates a float64 field.
func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field under the conventional "error" key.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog.Logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a structured logger writing JSON to w, tagged with
// the given component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates the process-default logger on stderr.
func NewDefaultLogger() Logger {
	return NewLogger(os.Stderr, "zcalc")
}

// applyFields attaches structured fields to a pending zerolog event.
func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

func (a *ZerologAdapter) Printf(format string, args ...interface{}) {
	a.logger.Info().Msg(fmt.Sprintf(format, args...))
}

func (a *ZerologAdapter) Println(args ...interface{}) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(args...), "\n"))
}

// StdLoggerAdapter implements Logger on top of the standard library
// log.Logger, for callers that cannot carry a zerolog dependency.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger.
func NewStdLoggerAdapter(logger *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: logger}
}

// formatFields renders fields as " k=v k=v" for line-oriented output.
func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	if err != nil {
		a.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
		return
	}
	a.logger.Printf("[ERROR] %s%s", msg, formatFields(fields))
}

func (a *StdLoggerAdapter) Printf(format string, args ...interface{}) {
	a.logger.Printf(format, args...)
}

func (a *StdLoggerAdapter) Println(args ...interface{}) {
	a.logger.Println(args...)
}
