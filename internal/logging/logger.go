// Package logging provides simple leveled logging for the seqreactor project.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// LogLevel represents the available log levels.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Config holds logging configuration.
type Config struct {
	Level  LogLevel
	Output io.Writer
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  LevelInfo,
		Output: os.Stderr,
	}
}

// Logger wraps stdlib log with level support and a small set of fixed
// key-value fields attached via With*.
type Logger struct {
	logger *log.Logger
	level  LogLevel
	mu     sync.Mutex
	fields []any // flattened key, value, key, value, ...
}

var (
	defaultLogger *Logger
	defMu         sync.RWMutex
)

// NewLogger creates a new logger.
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	output := config.Output
	if output == nil {
		output = os.Stderr
	}
	return &Logger{
		logger: log.New(output, "", log.LstdFlags),
		level:  config.Level,
	}
}

// Default returns the default logger, creating it if necessary.
func Default() *Logger {
	defMu.RLock()
	if defaultLogger != nil {
		defer defMu.RUnlock()
		return defaultLogger
	}
	defMu.RUnlock()

	defMu.Lock()
	defer defMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// SetDefault sets the default logger.
func SetDefault(logger *Logger) {
	defMu.Lock()
	defer defMu.Unlock()
	defaultLogger = logger
}

// WithConn returns a derived logger that attaches conn_fd=fd to every
// message it logs, tagging log lines with the connection they concern.
func (l *Logger) WithConn(fd int) *Logger {
	return l.with("conn_fd", fd)
}

// WithOp returns a derived logger that attaches op=op to every message.
func (l *Logger) WithOp(op string) *Logger {
	return l.with("op", op)
}

// WithError returns a derived logger that attaches err=err to every message.
func (l *Logger) WithError(err error) *Logger {
	return l.with("err", err)
}

func (l *Logger) with(key string, value any) *Logger {
	return &Logger{
		logger: l.logger,
		level:  l.level,
		fields: append(append([]any{}, l.fields...), key, value),
	}
}

func formatArgs(fields, args []any) string {
	all := append(append([]any{}, fields...), args...)
	if len(all) == 0 {
		return ""
	}
	var result string
	for i := 0; i < len(all); i += 2 {
		if i+1 < len(all) {
			if result != "" {
				result += " "
			}
			result += fmt.Sprintf("%v=%v", all[i], all[i+1])
		}
	}
	if result != "" {
		return " " + result
	}
	return ""
}

func (l *Logger) log(level LogLevel, prefix, msg string, args ...any) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("%s %s%s", prefix, msg, formatArgs(l.fields, args))
}

func (l *Logger) Debug(msg string, args ...any) { l.log(LevelDebug, "[DEBUG]", msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.log(LevelInfo, "[INFO]", msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.log(LevelWarn, "[WARN]", msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.log(LevelError, "[ERROR]", msg, args...) }

// Debugf, Infof, Warnf, Errorf are printf-style variants for call sites
// that build their own message instead of passing key-value pairs.
func (l *Logger) Debugf(format string, args ...any) {
	l.log(LevelDebug, "[DEBUG]", fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, "[INFO]", fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(LevelWarn, "[WARN]", fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(LevelError, "[ERROR]", fmt.Sprintf(format, args...))
}

// Printf exists for compatibility with code that expects a *log.Logger-like
// surface; it logs at info level.
func (l *Logger) Printf(format string, args ...any) { l.Infof(format, args...) }

// Global convenience functions operating on the default logger.
func Debug(msg string, args ...any) { Default().Debug(msg, args...) }
func Info(msg string, args ...any)  { Default().Info(msg, args...) }
func Warn(msg string, args ...any)  { Default().Warn(msg, args...) }
func Error(msg string, args ...any) { Default().Error(msg, args...) }
