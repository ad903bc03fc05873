package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelInfo, "text")

	log.Debug("hidden")
	log.Error("render failed", "error", errors.New("boom"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}
	if !strings.Contains(out, "err=boom") {
		t.Errorf("output = %q, want err=boom", out)
	}
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, slog.LevelDebug, "JSON")
	log.Debug("rendered", "nodes", 12, "error", "none")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if rec["msg"] != "rendered" {
		t.Errorf("msg = %v", rec["msg"])
	}
	if rec["err"] != "none" {
		t.Errorf("err = %v, want none", rec["err"])
	}
	if _, ok := rec["error"]; ok {
		t.Error("error key not renamed")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewNop(t *testing.T) {
	NewNop().Error("discarded")
}
