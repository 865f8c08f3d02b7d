package log

import (
	"bytes"
	"encoding/json"
	"errors"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newBufferLogger(t *testing.T, level Level, f Formatter) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return NewLogger(WithLevel(level), WithFormatter(f), WithOutput(NewWriterOutput(&buf))), &buf
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"Error", ErrorLevel, false},
		{"loud", InfoLevel, true},
	}
	for _, c := range cases {
		got, err := ParseLevel(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("ParseLevel(%q) err=%v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseLevel(%q)=%v want %v", c.in, got, c.want)
		}
	}
}

func TestJSONLoggerFieldsAndLevels(t *testing.T) {
	l, buf := newBufferLogger(t, InfoLevel, &JSONFormatter{})
	l = l.With(Component("registry"))
	l.Debug("hidden")
	l.Info("created event", Uint32("event_id", 7), Err(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &obj); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if obj["msg"] != "created event" || obj["level"] != "INFO" {
		t.Fatalf("unexpected entry: %v", obj)
	}
	if obj["component"] != "registry" || obj["error"] != "boom" {
		t.Fatalf("missing fields: %v", obj)
	}
	if obj["event_id"].(float64) != 7 {
		t.Fatalf("event_id=%v", obj["event_id"])
	}
}

func TestTextFormatterSortedKeys(t *testing.T) {
	l, buf := newBufferLogger(t, DebugLevel, &TextFormatter{DisableTimestamp: true})
	l.Debug("hello world", Str("b", "two words"), Int("a", 1))
	got := buf.String()
	want := "DEBUG hello world a=1 b=\"two words\"\n"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestSetLevelSharedWithChildren(t *testing.T) {
	l, buf := newBufferLogger(t, ErrorLevel, &TextFormatter{DisableTimestamp: true})
	child := l.WithComponent("child")
	child.Info("dropped")
	l.SetLevel(InfoLevel)
	if child.GetLevel() != InfoLevel {
		t.Fatalf("child level=%v", child.GetLevel())
	}
	child.Info("kept")
	if !strings.Contains(buf.String(), "kept component=child") || strings.Contains(buf.String(), "dropped") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSONCaller(t *testing.T) {
	l, buf := newBufferLogger(t, InfoLevel, &JSONFormatter{ShowCaller: true})
	l.Info("where")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("caller not reported: %q", buf.String())
	}
}

func TestApplyConfig(t *testing.T) {
	if _, err := ApplyConfig(nil); err != nil {
		t.Fatalf("nil config: %v", err)
	}
	if _, err := ApplyConfig(&Config{Format: "xml"}); err == nil {
		t.Fatalf("expected format error")
	}
	if _, err := ApplyConfig(&Config{Level: "nope"}); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := ApplyConfig(&Config{Outputs: []string{"file"}}); err == nil {
		t.Fatalf("expected missing file error")
	}
	if _, err := ApplyConfig(&Config{Outputs: []string{"kafka"}}); err == nil {
		t.Fatalf("expected output error")
	}

	path := filepath.Join(t.TempDir(), "app.log")
	l, err := ApplyConfig(&Config{Level: "debug", Format: "json", Outputs: []string{"file", "null"}, File: path})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	l.Debug("to file", Str("k", "v"))
	if err := l.(*BaseLogger).Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Fatalf("file content %q", data)
	}
}

func TestRedirectStdLog(t *testing.T) {
	prev := stdlog.Writer()
	prevFlags := stdlog.Flags()
	t.Cleanup(func() {
		stdlog.SetOutput(prev)
		stdlog.SetFlags(prevFlags)
	})

	l, buf := newBufferLogger(t, InfoLevel, &TextFormatter{DisableTimestamp: true})
	RedirectStdLog(l.WithComponent("pebble"))
	stdlog.Printf("compaction done")
	if got := buf.String(); !strings.Contains(got, "INFO  compaction done component=pebble") {
		t.Fatalf("redirected output %q", got)
	}
}
