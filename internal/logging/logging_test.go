package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   slog.Level
		wantOK bool
	}{
		{"Debug uppercase", "DEBUG", slog.LevelDebug, true},
		{"Debug mixed case", "DeBuG", slog.LevelDebug, true},
		{"Info lowercase", "info", slog.LevelInfo, true},
		{"Warn", "warn", slog.LevelWarn, true},
		{"Warning", "WARNING", slog.LevelWarn, true},
		{"Error", "error", slog.LevelError, true},
		{"With whitespace", "  DEBUG  ", slog.LevelDebug, true},
		{"Unknown value", "LOUD", slog.LevelInfo, false},
		{"Empty string", "", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "json")

	logger.Debug("hidden")
	logger.Info("query started", slog.Int("year", 1975))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if record["msg"] != "query started" {
		t.Errorf("unexpected msg %v", record["msg"])
	}
	if record["year"] != float64(1975) {
		t.Errorf("unexpected year %v", record["year"])
	}
}

func TestNew_TextFallback(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelDebug, "yaml")

	logger.Debug("query started", slog.String("genre", "punk"))

	out := buf.String()
	if !strings.Contains(out, "msg=\"query started\"") || !strings.Contains(out, "genre=punk") {
		t.Errorf("expected text record, got %q", out)
	}
}
