package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestErrorWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Error("save failed", errors.New("disk full"), Fields{"slot": "active_run"})

	var got map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if got["level"] != "error" || got["msg"] != "save failed" {
		t.Fatalf("unexpected level/msg: %v", got)
	}
	if got["error"] != "disk full" || got["slot"] != "active_run" {
		t.Fatalf("expected error and slot fields, got %v", got)
	}
}

func TestInfoDoesNotMutateCallerFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	f := Fields{"depth": 3}
	Info("turn resolved", f)
	if len(f) != 1 {
		t.Fatalf("expected caller fields untouched, got %v", f)
	}
}
