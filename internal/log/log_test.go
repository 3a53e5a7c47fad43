package log

import (
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("also shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered message: %q", out)
	}
	if !strings.Contains(out, "[WARN] statline: shown") {
		t.Errorf("output missing warn line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] statline: also shown") {
		t.Errorf("output missing error line: %q", out)
	}
}

func TestFields(t *testing.T) {
	var buf strings.Builder
	l := New(&buf, LevelInfo).WithComponent("engine").WithField("path", "/tmp/x")

	l.Info("loaded")

	out := buf.String()
	if !strings.Contains(out, "component=engine") || !strings.Contains(out, "path=/tmp/x") {
		t.Errorf("output missing fields: %q", out)
	}
}

func TestFormatArgs(t *testing.T) {
	var buf strings.Builder
	New(&buf, LevelInfo).Info("count=%d", 3)

	if !strings.Contains(buf.String(), "count=3") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("dropped") // must not panic or write anywhere visible
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{"ERROR", LevelError},
		{"bogus", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
