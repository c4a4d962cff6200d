package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("Trip saved", "trip_id", "t1")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "Trip saved") || !strings.Contains(out, "trip_id=t1") {
		t.Errorf("expected warn line with attributes, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("expected no color codes for a buffer, got %q", out)
	}
}
