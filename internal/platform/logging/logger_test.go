package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestLogger_WritesKeyValueFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf)

	logger.Warn("provider request failed", "status_code", 500, "error", errors.New("boom"), "dangling")

	var line map[string]any
	if err := sonic.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line: %v (raw=%q)", err, buf.String())
	}
	if line["msg"] != "provider request failed" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if line["level"] != "WARN" {
		t.Fatalf("unexpected level: %v", line["level"])
	}
	if line["status_code"] != float64(500) {
		t.Fatalf("unexpected status_code: %v", line["status_code"])
	}
	if line["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", line["error"])
	}
	if _, ok := line["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelWarn, &buf)

	logger.InfoContext(context.Background(), "should be dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below level, got %q", buf.String())
	}
}

func TestLogger_NilReceiverFallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	prev := Default()
	SetDefault(NewJSONWriter(LevelInfo, &buf))
	t.Cleanup(func() { SetDefault(prev) })

	var logger *Logger
	logger.Info("from nil logger")
	if buf.Len() == 0 {
		t.Fatalf("expected nil logger to write through default logger")
	}
}

func TestLogger_StdLogWritesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(LevelInfo, &buf).Named("pprof")

	logger.StdLog(LevelWarn).Print("http: TLS handshake error")

	var line map[string]any
	if err := sonic.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line: %v (raw=%q)", err, buf.String())
	}
	if line["level"] != "WARN" || line["logger"] != "pprof" {
		t.Fatalf("unexpected std log line: %v", line)
	}
	if line["msg"] != "http: TLS handshake error" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
}
