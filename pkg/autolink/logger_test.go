package autolink

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name           string
		level          LogLevel
		setupFunc      func(*Logger)
		expectedOutput []string
		notExpected    []string
	}{
		{
			name:  "debug level shows all messages",
			level: LogDebug,
			setupFunc: func(l *Logger) {
				l.Debug("debug message")
				l.Info("info message")
				l.Warn("warn message")
				l.Error("error message")
			},
			expectedOutput: []string{
				"[DEBUG]", "debug message",
				"[INFO]", "info message",
				"[WARN]", "warn message",
				"[ERROR]", "error message",
			},
		},
		{
			name:  "info level hides debug messages",
			level: LogInfo,
			setupFunc: func(l *Logger) {
				l.Debug("debug message")
				l.Info("info message")
			},
			expectedOutput: []string{"[INFO]", "info message"},
			notExpected:    []string{"[DEBUG]", "debug message"},
		},
		{
			name:  "warn level shows only warnings and errors",
			level: LogWarn,
			setupFunc: func(l *Logger) {
				l.Info("info message")
				l.Warn("warn message")
				l.Error("error message")
			},
			expectedOutput: []string{"[WARN]", "[ERROR]"},
			notExpected:    []string{"[INFO]"},
		},
		{
			name:  "off level shows nothing",
			level: LogOff,
			setupFunc: func(l *Logger) {
				l.Debug("debug message")
				l.Error("error message")
			},
			notExpected: []string{"[DEBUG]", "[ERROR]"},
		},
		{
			name:  "structured fields",
			level: LogDebug,
			setupFunc: func(l *Logger) {
				l.WithFields(Fields{
					"part": "word/document.xml",
					"run":  "see a@b.com",
				}).Warn("run left unchanged")
			},
			expectedOutput: []string{
				"[WARN]",
				"run left unchanged part=word/document.xml run=see a@b.com",
			},
		},
		{
			name:  "formatting arguments",
			level: LogInfo,
			setupFunc: func(l *Logger) {
				l.Info("Number of Hyperlinks Created: %d", 3)
			},
			expectedOutput: []string{"Number of Hyperlinks Created: 3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level)

			tt.setupFunc(logger)

			output := buf.String()
			for _, expected := range tt.expectedOutput {
				if !strings.Contains(output, expected) {
					t.Errorf("Expected output to contain %q, got:\n%s", expected, output)
				}
			}
			for _, notExpected := range tt.notExpected {
				if strings.Contains(output, notExpected) {
					t.Errorf("Expected output NOT to contain %q, got:\n%s", notExpected, output)
				}
			}
		})
	}
}

func TestLoggerWithFieldDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo)

	child := logger.WithField("part", "word/header1.xml")
	logger.Info("parent")
	child.Info("child")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if strings.Contains(lines[0], "part=") {
		t.Errorf("parent logger picked up child field: %s", lines[0])
	}
	if !strings.Contains(lines[1], "part=word/header1.xml") {
		t.Errorf("child logger lost its field: %s", lines[1])
	}
}

func TestLoggerConcurrentUse(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LogInfo)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.WithField("worker", n).Info("done")
		}(i)
	}
	wg.Wait()

	if got := strings.Count(buf.String(), "\n"); got != 10 {
		t.Errorf("expected 10 lines, got %d", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogDebug},
		{"DEBUG", LogDebug},
		{"info", LogInfo},
		{"warn", LogWarn},
		{"warning", LogWarn},
		{"error", LogError},
		{"off", LogOff},
		{"none", LogOff},
		{"", LogInfo},
		{"chatty", LogInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerNilWriter(t *testing.T) {
	logger := NewLogger(nil, LogDebug)
	logger.Info("goes nowhere")
	if !logger.Enabled(LogDebug) {
		t.Error("Enabled(LogDebug) = false at debug level")
	}
}

func TestLoggerEnabled(t *testing.T) {
	logger := NewLogger(nil, LogWarn)
	if logger.Enabled(LogInfo) || !logger.Enabled(LogError) {
		t.Error("Enabled() does not follow the warn threshold")
	}
	logger.SetLevel(LogOff)
	if logger.Enabled(LogError) {
		t.Error("Enabled() = true with logging off")
	}
	if got := LogLevel(9).String(); got != "UNKNOWN" {
		t.Errorf("String() = %q, want UNKNOWN", got)
	}
}
