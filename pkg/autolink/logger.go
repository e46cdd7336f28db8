package autolink

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
	LogOff
)

var levelNames = [...]string{
	LogDebug: "DEBUG",
	LogInfo:  "INFO",
	LogWarn:  "WARN",
	LogError: "ERROR",
	LogOff:   "OFF",
}

func (l LogLevel) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLogLevel maps a configuration value to a LogLevel. Unknown values
// fall back to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogDebug
	case "warn", "warning":
		return LogWarn
	case "error":
		return LogError
	case "off", "none":
		return LogOff
	}
	return LogInfo
}

type Fields map[string]interface{}

// Logger writes levelled, line oriented messages with sorted key=value
// fields. Loggers derived with WithField share the writer and lock of
// their parent.
type Logger struct {
	out    io.Writer
	level  LogLevel
	fields Fields
	mu     *sync.Mutex
}

func NewLogger(w io.Writer, level LogLevel) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{out: w, level: level, fields: Fields{}, mu: new(sync.Mutex)}
}

func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func (l *Logger) Level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level LogLevel) bool {
	current := l.Level()
	return current != LogOff && level >= current
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(Fields{key: value})
}

func (l *Logger) WithFields(fields Fields) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{out: l.out, level: l.level, fields: merged, mu: l.mu}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.write(LogDebug, format, args) }
func (l *Logger) Info(format string, args ...interface{})  { l.write(LogInfo, format, args) }
func (l *Logger) Warn(format string, args ...interface{})  { l.write(LogWarn, format, args) }
func (l *Logger) Error(format string, args ...interface{}) { l.write(LogError, format, args) }

func (l *Logger) write(level LogLevel, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.level == LogOff || level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	fmt.Fprintf(&sb, format, args...)

	keys := make([]string, 0, len(l.fields))
	for k := range l.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, l.fields[k])
	}
	sb.WriteByte('\n')

	io.WriteString(l.out, sb.String())
}

var (
	defaultLogger     *Logger
	defaultLoggerOnce sync.Once
	defaultLoggerMu   sync.RWMutex
)

func loadDefaultLogger() {
	defaultLoggerOnce.Do(func() {
		level := ParseLogLevel(GetGlobalConfig().LogLevel)
		defaultLoggerMu.Lock()
		defaultLogger = NewLogger(os.Stderr, level)
		defaultLoggerMu.Unlock()
	})
}

// GetLogger returns the package logger new engines write to. It logs to
// stderr at the level of the global configuration.
func GetLogger() *Logger {
	loadDefaultLogger()
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetLogger replaces the package logger.
func SetLogger(logger *Logger) {
	loadDefaultLogger()
	defaultLoggerMu.Lock()
	defaultLogger = logger
	defaultLoggerMu.Unlock()
}

// UpdateLoggerFromConfig sets the package logger's level from the global
// configuration.
func UpdateLoggerFromConfig() {
	GetLogger().SetLevel(ParseLogLevel(GetGlobalConfig().LogLevel))
}
