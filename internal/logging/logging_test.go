package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "bodies", 51)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "bodies=51") {
		t.Errorf("missing warn line: %q", out)
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "chatty")
	l.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Error("unknown level should default to info")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arena.log")
	l, closeFn, err := OpenFile(path, "info")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	l.Info("frame loop stopped")
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !strings.Contains(string(data), "frame loop stopped") {
		t.Errorf("log file missing line: %q", data)
	}
}
