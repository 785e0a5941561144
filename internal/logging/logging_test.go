package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/mathplace/internal/config"
)

func TestNewWritesJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mathplace.log")
	log, err := New(config.LoggingConfig{Level: "debug", File: path, MaxSize: 1}, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("hello")
	log.Debug("details")
	log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if entry["message"] != "hello" || entry["level"] != "INFO" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewConsoleRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LoggingConfig{Level: "warn"}, Options{Console: true, Stderr: &buf})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	log.Info("quiet")
	log.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") {
		t.Errorf("console output = %q", out)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "chatty"}, Options{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewWithoutOutputsIsNop(t *testing.T) {
	log, err := New(config.LoggingConfig{Level: "info"}, Options{})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if log.Core().Enabled(0) {
		t.Error("expected no-op logger")
	}
}
