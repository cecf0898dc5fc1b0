package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerWritesJSONL(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.SetAdapterID("adapter-1")

	if err := l.Info(CategoryBridge, "content_sync", "host to embedded", map[string]any{"kind": "insert"}); err != nil {
		t.Fatalf("Info: %v", err)
	}

	line := strings.TrimSpace(buf.String())
	var ev Event
	if err := json.Unmarshal([]byte(line), &ev); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if ev.Level != LevelInfo {
		t.Errorf("Level = %v, want %v", ev.Level, LevelInfo)
	}
	if ev.Category != CategoryBridge {
		t.Errorf("Category = %v, want %v", ev.Category, CategoryBridge)
	}
	if ev.AdapterID != "adapter-1" {
		t.Errorf("AdapterID = %v, want adapter-1", ev.AdapterID)
	}
	if ev.Timestamp.IsZero() {
		t.Error("Timestamp should be stamped automatically")
	}
	if ev.Details["kind"] != "insert" {
		t.Errorf("Details[kind] = %v, want insert", ev.Details["kind"])
	}
}

func TestLoggerMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	if err := l.Debug(CategoryLayout, "resize", "below min level", nil); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if buf.Len() != 0 {
		t.Error("debug event should be suppressed at default info level")
	}

	l.SetMinLevel(LevelDebug)
	if err := l.Debug(CategoryLayout, "resize", "now visible", nil); err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("debug event should be written after lowering min level")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	l := Nop()
	if err := l.Error(CategoryLifecycle, "dispose", "should vanish", nil); err != nil {
		t.Fatalf("Nop logger returned error: %v", err)
	}
}
