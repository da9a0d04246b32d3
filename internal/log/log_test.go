package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevelsAndKVs(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer Close()

	SetLevel(LevelInfo)
	Debug("hidden", "k", 1)
	Info("items loaded", "count", 3, "source", "demo.yaml")
	Error("reload failed", errors.New("boom"), "path", "x.ics", "dangling")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "[INFO] items loaded count=3 source=demo.yaml") {
		t.Errorf("missing info line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] reload failed err=boom path=x.ics\n") {
		t.Errorf("missing error line: %q", out)
	}

	buf.Reset()
	SetLevel(LevelDebug)
	Debug("shown")
	if !strings.Contains(buf.String(), "[DEBUG] shown") {
		t.Errorf("debug line missing at debug level: %q", buf.String())
	}
	SetLevel(LevelInfo)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"ERROR": LevelError,
		"info":  LevelInfo,
		"":      LevelInfo,
		"loud":  LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %s, got %s", in, want, got)
		}
	}
}
