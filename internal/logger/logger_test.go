package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dbsmedya/amplisearch/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string // String representation of zapcore.Level
	}{
		{"debug", "debug"},
		{"info", "info"},
		{"", "info"}, // empty defaults to info
		{"warn", "warn"},
		{"error", "error"},
		{"unknown", "info"}, // unknown defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level := parseLevel(tt.input)
			if level.String() != tt.expected {
				t.Errorf("parseLevel(%q) = %v, expected %v", tt.input, level.String(), tt.expected)
			}
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.LoggingConfig
	}{
		{"json format info level", &config.LoggingConfig{Level: "info", Format: "json", Output: "stdout"}},
		{"text format debug level", &config.LoggingConfig{Level: "debug", Format: "text", Output: "stderr"}},
		{"file output", &config.LoggingConfig{Level: "warn", Format: "json", Output: filepath.Join(t.TempDir(), "log.json")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if logger == nil {
				t.Fatal("New() returned nil logger without error")
			}
			_ = logger.Sync()
		})
	}
}

func TestNewDefault(t *testing.T) {
	logger := NewDefault()
	if logger == nil {
		t.Fatal("NewDefault() returned nil")
	}
	logger.Info("test message")
	_ = logger.Sync()
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.WithRun(3, 2).Warn("discarded")
	if err := logger.Sync(); err != nil {
		t.Errorf("nop Sync() returned %v", err)
	}
}

func TestContextLoggers(t *testing.T) {
	logger := NewNop()

	runLogger := logger.WithRun(5, 3)
	if runLogger == nil || runLogger == logger {
		t.Error("WithRun() should return a new logger instance")
	}
	if logger.WithEngine("analytic") == logger {
		t.Error("WithEngine() should return a new logger instance")
	}
	if logger.WithTrial(4) == logger {
		t.Error("WithTrial() should return a new logger instance")
	}
	fields := logger.WithFields(map[string]interface{}{"shots": 80, "hits": 12})
	if fields == nil {
		t.Fatal("WithFields() returned nil")
	}
	fields.WithRun(1, 1).WithTrial(2).Info("chained")
}

func TestBuildWriters(t *testing.T) {
	for _, out := range []string{"stdout", "stderr", "", filepath.Join(t.TempDir(), "out.log")} {
		if buildWriters(out) == nil {
			t.Errorf("buildWriters(%q) returned nil", out)
		}
	}
	// unwritable path falls back to stderr
	if buildWriters("/nonexistent-dir/sub/out.log") == nil {
		t.Error("buildWriters() should fall back instead of returning nil")
	}
}

func TestLoggingOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logger-test.json")

	logger, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Info("test info message")
	logger.Debug("hidden debug message")
	logger.WithRun(4, 2).Warn("run message")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	contentStr := string(content)
	if !strings.Contains(contentStr, "test info message") {
		t.Error("Log file should contain 'test info message'")
	}
	if strings.Contains(contentStr, "hidden debug message") {
		t.Error("Debug message should be filtered at info level")
	}
	if !strings.Contains(contentStr, `"qubits":4`) || !strings.Contains(contentStr, `"targets":2`) {
		t.Errorf("Log file should contain run context, got %s", contentStr)
	}
}

func TestWithFieldsKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.json")
	logger, err := New(&config.LoggingConfig{Level: "info", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.WithFields(map[string]any{"workers": 4, "seed": 7, "mode": "counting"}).Info("sweep")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), `"mode":"counting","seed":7,"workers":4`) {
		t.Errorf("fields should be attached in key order, got %s", content)
	}
}
