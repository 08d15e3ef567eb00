// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package telemetry provides OpenTelemetry integration with rich attributes
// for assistant observability.
package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Semantic conventions for Atelier assistant telemetry.
// These follow OpenTelemetry naming conventions where applicable.
const (
	// Turn attributes
	AttrTurnID       = "atelier.turn.id"
	AttrTurnUserID   = "atelier.turn.user_id"
	AttrTurnRounds   = "atelier.turn.rounds"
	AttrTurnMode     = "atelier.turn.mode" // "agent", "fallback", "guardrail"
	AttrTurnMaxRound = "atelier.turn.max_rounds"

	// Tool attributes
	AttrToolName       = "atelier.tool.name"
	AttrToolCallID     = "atelier.tool.call_id"
	AttrToolArgs       = "atelier.tool.arguments"
	AttrToolResult     = "atelier.tool.result"
	AttrToolDurationMs = "atelier.tool.duration_ms"
	AttrToolSuccess    = "atelier.tool.success"

	// Tool set attributes
	AttrToolsCount = "atelier.tools.count"
	AttrToolsNames = "atelier.tools.names"

	// Guardrail attributes
	AttrGuardrailBlocked = "atelier.guardrail.blocked"
	AttrGuardrailTopic   = "atelier.guardrail.topic"

	// LLM attributes (extending standard gen_ai conventions)
	AttrLLMModel        = "gen_ai.request.model"
	AttrLLMProvider     = "gen_ai.system"
	AttrLLMMessages     = "gen_ai.request.messages"
	AttrLLMTokensInput  = "gen_ai.usage.input_tokens"
	AttrLLMTokensOutput = "gen_ai.usage.output_tokens"
	AttrLLMTokensTotal  = "gen_ai.usage.total_tokens"
	AttrLLMDurationMs   = "gen_ai.duration_ms"
	AttrLLMToolCalls    = "gen_ai.tool_calls"
)

// TurnAttributes returns common attributes for conversation turn spans.
func TurnAttributes(turnID, userID, mode string, rounds, maxRounds int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrTurnID, turnID),
		attribute.String(AttrTurnMode, mode),
	}
	if userID != "" {
		attrs = append(attrs, attribute.String(AttrTurnUserID, userID))
	}
	if rounds > 0 {
		attrs = append(attrs, attribute.Int(AttrTurnRounds, rounds))
	}
	if maxRounds > 0 {
		attrs = append(attrs, attribute.Int(AttrTurnMaxRound, maxRounds))
	}
	return attrs
}

// ToolCallAttributes returns attributes for a tool call span.
func ToolCallAttributes(name, callID string, durationMs float64, success bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(AttrToolName, name),
		attribute.String(AttrToolCallID, callID),
		attribute.Float64(AttrToolDurationMs, durationMs),
		attribute.Bool(AttrToolSuccess, success),
	}
}

// ToolCallArgsResult returns attributes with tool arguments and result (truncated for safety).
func ToolCallArgsResult(args, result string, maxLen int) []attribute.KeyValue {
	if maxLen <= 0 {
		maxLen = 500
	}
	attrs := []attribute.KeyValue{}
	if args != "" {
		if len(args) > maxLen {
			args = args[:maxLen] + "..."
		}
		attrs = append(attrs, attribute.String(AttrToolArgs, args))
	}
	if result != "" {
		if len(result) > maxLen {
			result = result[:maxLen] + "..."
		}
		attrs = append(attrs, attribute.String(AttrToolResult, result))
	}
	return attrs
}

// ToolsetAttributes returns attributes describing the registered tools.
func ToolsetAttributes(total int, names []string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Int(AttrToolsCount, total),
	}
	if len(names) > 0 {
		attrs = append(attrs, attribute.StringSlice(AttrToolsNames, names))
	}
	return attrs
}

// GuardrailAttributes returns attributes for a guardrail check.
func GuardrailAttributes(blocked bool, topic string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Bool(AttrGuardrailBlocked, blocked),
	}
	if topic != "" {
		attrs = append(attrs, attribute.String(AttrGuardrailTopic, topic))
	}
	return attrs
}

// LLMAttributes returns attributes for LLM call spans.
func LLMAttributes(model, provider string, msgCount int, toolCallCount int) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(AttrLLMModel, model),
		attribute.Int(AttrLLMMessages, msgCount),
	}
	if provider != "" {
		attrs = append(attrs, attribute.String(AttrLLMProvider, provider))
	}
	if toolCallCount > 0 {
		attrs = append(attrs, attribute.Int(AttrLLMToolCalls, toolCallCount))
	}
	return attrs
}

// LLMUsageAttributes returns token usage attributes.
func LLMUsageAttributes(inputTokens, outputTokens int, durationMs float64) []attribute.KeyValue {
	attrs := []attribute.KeyValue{}
	if inputTokens > 0 {
		attrs = append(attrs, attribute.Int(AttrLLMTokensInput, inputTokens))
	}
	if outputTokens > 0 {
		attrs = append(attrs, attribute.Int(AttrLLMTokensOutput, outputTokens))
	}
	if inputTokens > 0 || outputTokens > 0 {
		attrs = append(attrs, attribute.Int(AttrLLMTokensTotal, inputTokens+outputTokens))
	}
	if durationMs > 0 {
		attrs = append(attrs, attribute.Float64(AttrLLMDurationMs, durationMs))
	}
	return attrs
}
