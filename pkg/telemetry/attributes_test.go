// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package telemetry

import (
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func findAttr(attrs []attribute.KeyValue, key string) (attribute.Value, bool) {
	for _, a := range attrs {
		if string(a.Key) == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTurnAttributes(t *testing.T) {
	attrs := TurnAttributes("turn-1", "user-42", "agent", 3, 8)

	if v, ok := findAttr(attrs, AttrTurnID); !ok || v.AsString() != "turn-1" {
		t.Error("turn id attribute missing or wrong")
	}
	if v, ok := findAttr(attrs, AttrTurnUserID); !ok || v.AsString() != "user-42" {
		t.Error("user id attribute missing or wrong")
	}
	if v, ok := findAttr(attrs, AttrTurnRounds); !ok || v.AsInt64() != 3 {
		t.Error("rounds attribute missing or wrong")
	}

	// Empty user id should be omitted
	attrs = TurnAttributes("turn-2", "", "fallback", 0, 0)
	if _, ok := findAttr(attrs, AttrTurnUserID); ok {
		t.Error("empty user id should be omitted")
	}
	if _, ok := findAttr(attrs, AttrTurnRounds); ok {
		t.Error("zero rounds should be omitted")
	}
}

func TestToolCallArgsResultTruncation(t *testing.T) {
	long := strings.Repeat("x", 600)
	attrs := ToolCallArgsResult(long, long, 500)

	for _, key := range []string{AttrToolArgs, AttrToolResult} {
		v, ok := findAttr(attrs, key)
		if !ok {
			t.Fatalf("attribute %s missing", key)
		}
		if len(v.AsString()) != 503 { // 500 chars + "..."
			t.Errorf("attribute %s not truncated: len=%d", key, len(v.AsString()))
		}
	}
}

func TestGuardrailAttributes(t *testing.T) {
	attrs := GuardrailAttributes(true, "financial_advice")
	if v, ok := findAttr(attrs, AttrGuardrailBlocked); !ok || !v.AsBool() {
		t.Error("blocked attribute missing or wrong")
	}
	if v, ok := findAttr(attrs, AttrGuardrailTopic); !ok || v.AsString() != "financial_advice" {
		t.Error("topic attribute missing or wrong")
	}

	attrs = GuardrailAttributes(false, "")
	if _, ok := findAttr(attrs, AttrGuardrailTopic); ok {
		t.Error("empty topic should be omitted")
	}
}

func TestLLMUsageAttributes(t *testing.T) {
	attrs := LLMUsageAttributes(100, 50, 123.4)
	if v, ok := findAttr(attrs, AttrLLMTokensTotal); !ok || v.AsInt64() != 150 {
		t.Error("total tokens should be input+output")
	}

	attrs = LLMUsageAttributes(0, 0, 0)
	if len(attrs) != 0 {
		t.Errorf("zero usage should produce no attributes, got %d", len(attrs))
	}
}
