package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_TextLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: WarnLevel, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "path", "limit")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info must be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "path=limit") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: DebugLevel, Output: &buf, JSON: true}).With("session", "s1")
	logger.Debug("field changed", "path", "sort")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if entry["msg"] != "field changed" || entry["path"] != "sort" || entry["session"] != "s1" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   DebugLevel,
		" WARN ":  WarnLevel,
		"warning": WarnLevel,
		"Error":   ErrorLevel,
		"":        InfoLevel,
		"loud":    InfoLevel,
	}
	for raw, want := range tests {
		if got := ParseLevel(raw); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatalf("missing logger must fall back to a discarding one")
	}
	var buf bytes.Buffer
	logger := New(Config{Level: InfoLevel, Output: &buf})
	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Fatalf("context logger not used: %q", buf.String())
	}
}
