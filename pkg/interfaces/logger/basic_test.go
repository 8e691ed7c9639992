package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestBasicLoggerFieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithWriter(&buf), WithLevel(LevelDebug))

	With(log, map[string]any{"field": "Power", "row": 0}).Debug("resolved links", "count", 2)
	log.Trace("dropped")

	got := strings.TrimSpace(buf.String())
	if got != "[DEBUG] resolved links field=Power row=0 count=2" {
		t.Fatalf("unexpected log line %q", got)
	}
}

func TestWithFallsBackForPlainLoggers(t *testing.T) {
	nop := &Nop{}
	if With(nop, map[string]any{"a": 1}) != Logger(nop) {
		t.Fatalf("expected loggers without fields support to be returned as is")
	}
	if _, ok := With(nil, nil).(*Nop); !ok {
		t.Fatalf("expected nil logger to become Nop")
	}
}
