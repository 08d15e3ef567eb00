package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestConfigureSlogInjectsTurnID(t *testing.T) {
	var buf bytes.Buffer
	logger := ConfigureSlog(&buf, "info", "json")

	ctx := WithTurnID(context.Background(), "turn-123")
	logger.InfoContext(ctx, "assistant.turn.start")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if record["turn_id"] != "turn-123" {
		t.Errorf("turn_id = %v, want turn-123", record["turn_id"])
	}
	if record["msg"] != "assistant.turn.start" {
		t.Errorf("msg = %v", record["msg"])
	}
}

func TestConfigureSlogWithoutTurnID(t *testing.T) {
	var buf bytes.Buffer
	logger := ConfigureSlog(&buf, "info", "json")

	logger.InfoContext(context.Background(), "event")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log record: %v", err)
	}
	if _, present := record["turn_id"]; present {
		t.Error("turn_id must be absent outside a turn")
	}
	if _, present := record["trace_id"]; present {
		t.Error("trace_id must be absent without an active span")
	}
}

func TestConfigureSlogLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := ConfigureSlog(&buf, "warn", "text")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("info record leaked past warn level: %s", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Error("warn record missing")
	}
}

func TestTurnIDFromContext(t *testing.T) {
	if _, ok := TurnIDFromContext(context.Background()); ok {
		t.Error("empty context must carry no turn id")
	}
	ctx := WithTurnID(context.Background(), "t-1")
	id, ok := TurnIDFromContext(ctx)
	if !ok || id != "t-1" {
		t.Errorf("got %q/%v, want t-1/true", id, ok)
	}
}
