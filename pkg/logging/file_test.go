package logging

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestLogger(t *testing.T, format Format, level Level) (*FileLogger, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   logPath,
		Format: format,
		Level:  level,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	return logger, logPath
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

func TestNewFileLogger_CreatesDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "dir", "test.log")

	logger, err := NewFileLogger(FileLoggerConfig{
		Path:   logPath,
		Format: FormatText,
		Level:  InfoLevel,
	})
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("Log file was not created")
	}
}

func TestFileLogger_LogLevels(t *testing.T) {
	logger, logPath := newTestLogger(t, FormatText, WarnLevel)
	ctx := context.Background()

	logger.Debug(ctx, "debug message", nil)
	logger.Info(ctx, "info message", nil)
	logger.Warn(ctx, "warn message", nil)
	logger.Error(ctx, "error message", errors.New("boom"), nil)
	logger.Close()

	lines := readLines(t, logPath)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[0], "warn message") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") || !strings.Contains(lines[1], "boom") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestFileLogger_JSONFormat(t *testing.T) {
	logger, logPath := newTestLogger(t, FormatJSON, DebugLevel)
	ctx := context.Background()

	withRun := logger.WithFields(Fields{"run_id": "abc"})
	withRun.Info(ctx, "listing complete", Fields{"files": 3})
	logger.Close()

	lines := readLines(t, logPath)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "listing complete" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["run_id"] != "abc" {
		t.Errorf("run_id = %v", entry["run_id"])
	}
	if entry["files"] != float64(3) {
		t.Errorf("files = %v", entry["files"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", DebugLevel},
		{"INFO", InfoLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"bogus", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNullLogger(t *testing.T) {
	var logger Logger = NewNullLogger()
	ctx := context.Background()

	logger.Info(ctx, "ignored", Fields{"k": "v"})
	if logger.WithFields(Fields{"a": 1}) != logger {
		t.Error("WithFields() should return the same null logger")
	}
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}
