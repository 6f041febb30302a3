package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Info("server started", "addr", "127.0.0.1:6379")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "server started" {
		t.Errorf("msg = %v, want %q", entry["msg"], "server started")
	}
	if entry["addr"] != "127.0.0.1:6379" {
		t.Errorf("addr = %v", entry["addr"])
	}
}

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "warn", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info entry emitted below warn level: %q", buf.String())
	}

	log.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn entry not emitted")
	}
}

func TestSetLevel_Dynamic(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Debug("before")
	if buf.Len() != 0 {
		t.Fatal("debug entry emitted at info level")
	}

	SetLevel("debug")
	defer SetLevel("info")

	log.Debug("after")
	if buf.Len() == 0 {
		t.Error("debug entry not emitted after SetLevel(debug)")
	}
	if GetLevel() != "debug" {
		t.Errorf("GetLevel() = %q, want debug", GetLevel())
	}
}

func TestRedaction(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	log.Info("auth attempt", "password", "hunter2", "remote", "127.0.0.1:55000")

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Errorf("password leaked into log output: %q", out)
	}
	if !strings.Contains(out, redactedValue) {
		t.Errorf("redaction placeholder missing: %q", out)
	}
	if !strings.Contains(out, "127.0.0.1:55000") {
		t.Errorf("non-sensitive field redacted: %q", out)
	}
}
