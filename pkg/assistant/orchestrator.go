// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/atelier-ai/atelier/pkg/errors"
	"github.com/atelier-ai/atelier/pkg/llm"
	"github.com/atelier-ai/atelier/pkg/resilience"
	"github.com/atelier-ai/atelier/pkg/telemetry"
	"github.com/atelier-ai/atelier/pkg/tools"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Chat executes one conversation turn. The guardrail filter runs first; an
// uninitialized service answers through the fallback responder; otherwise
// the provider drives zero or more tool rounds before the final answer.
// Chat never returns an error: every path produces a well-formed Result.
func (s *Service) Chat(ctx context.Context, text string, chatCtx ChatContext) Result {
	initMetrics()

	turnID := uuid.NewString()
	ctx = telemetry.WithTurnID(ctx, turnID)
	ctx, span := s.tracer.Start(ctx, "Assistant.Chat")
	defer span.End()
	log := slog.Default()
	start := time.Now()

	defer func() {
		turnLatencyMs.Record(ctx, time.Since(start).Seconds()*1000)
	}()

	log.InfoContext(ctx, "assistant.turn.start",
		slog.String("user_id", chatCtx.UserID),
	)

	if check := s.guardrail.CheckInput(ctx, text); check.Blocked {
		span.SetAttributes(telemetry.GuardrailAttributes(true, check.Topic)...)
		span.SetAttributes(telemetry.TurnAttributes(turnID, chatCtx.UserID, "guardrail", 0, 0)...)
		guardrailCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("topic", check.Topic),
		))
		turnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", "guardrail")))
		log.InfoContext(ctx, "assistant.guardrail.blocked",
			slog.String("topic", check.Topic),
			slog.String("term", check.Term),
		)
		return Result{
			Text:        check.Redirect,
			Suggestions: append([]string(nil), defaultSuggestions...),
			Action:      ActionNone,
			TraceID:     turnID,
		}
	}
	span.SetAttributes(telemetry.GuardrailAttributes(false, "")...)

	if !s.initialized.Load() {
		span.SetAttributes(telemetry.TurnAttributes(turnID, chatCtx.UserID, "fallback", 0, 0)...)
		return s.fallback(ctx, log, turnID, text, nil)
	}

	ctx = tools.WithOwner(ctx, chatCtx.UserID)
	span.SetAttributes(telemetry.ToolsetAttributes(s.registry.Len(), s.registry.Names())...)
	result, rounds, err := s.runTurn(ctx, log, turnID, text)
	if err != nil {
		span.SetAttributes(telemetry.TurnAttributes(turnID, chatCtx.UserID, "fallback", rounds, s.maxToolRounds)...)
		turnErrorCounter.Add(ctx, 1)
		log.WarnContext(ctx, "assistant.provider.error",
			slog.String("error", err.Error()),
			slog.String("error_code", string(errors.AsAtelierError(err).Code)),
		)
		// Completed tool outputs survive the fallback: they are real
		// results from this turn.
		var completed []ToolOutput
		if result != nil {
			completed = result.ToolOutputs
		}
		return s.fallback(ctx, log, turnID, text, completed)
	}

	span.SetAttributes(telemetry.TurnAttributes(turnID, chatCtx.UserID, "agent", rounds, s.maxToolRounds)...)
	turnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", "agent")))
	log.InfoContext(ctx, "assistant.turn.complete",
		slog.Int("rounds", rounds),
		slog.Int("tool_calls", len(result.ToolOutputs)),
	)
	result.TraceID = turnID
	return *result
}

func (s *Service) fallback(ctx context.Context, log *slog.Logger, turnID, text string, completed []ToolOutput) Result {
	fallbackCounter.Add(ctx, 1)
	turnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", "fallback")))

	result := s.responder.Respond(text)
	result.TraceID = turnID
	result.ToolOutputs = completed
	log.InfoContext(ctx, "assistant.fallback.answer",
		slog.String("action", result.Action),
	)
	return result
}

// runTurn drives the provider exchange. Rounds are sequential from the
// caller's perspective: round k+1 never starts before round k's real
// results have been returned to the provider. The exchange is finite: it
// ends with a final answer, at the round bound, or on a provider failure.
func (s *Service) runTurn(ctx context.Context, log *slog.Logger, turnID, text string) (*Result, int, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: s.instructions},
		{Role: llm.RoleUser, Content: text},
	}
	definitions := s.registry.Definitions()
	outputs := make([]ToolOutput, 0, 4)

	var lastContent string
	for round := 0; round < s.maxToolRounds; round++ {
		resp, err := s.callProvider(ctx, llm.ChatRequest{
			Model:    s.model,
			Messages: messages,
			Tools:    definitions,
		})
		if err != nil {
			return &Result{ToolOutputs: outputs}, round,
				errors.New(errors.CodeLLMError, "completion provider call failed", err).
					WithContext("turn_id", turnID).
					WithRecoverable(true)
		}

		if len(resp.ToolCalls) == 0 {
			return &Result{Text: resp.Content, ToolOutputs: outputs}, round, nil
		}
		if resp.Content != "" {
			lastContent = resp.Content
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   resp.Content,
			ToolCalls: resp.ToolCalls,
		})

		for _, call := range resp.ToolCalls {
			payload := s.executeTool(ctx, log, call)
			outputs = append(outputs, ToolOutput{Name: call.Function.Name, Output: payload})

			encoded, err := json.Marshal(payload)
			if err != nil {
				encoded = []byte(fmt.Sprintf(`{"error":"unencodable tool result: %v"}`, err))
			}
			messages = append(messages, llm.Message{
				Role:       llm.RoleTool,
				Content:    string(encoded),
				ToolCallID: call.ID,
			})
		}
	}

	// Round bound reached. Whatever the provider composed so far is the
	// best available answer; an empty one degrades to the fallback path.
	if lastContent != "" {
		return &Result{Text: lastContent, ToolOutputs: outputs}, s.maxToolRounds, nil
	}
	return &Result{ToolOutputs: outputs}, s.maxToolRounds,
		errors.New(errors.CodeLLMError, "tool round bound reached without an answer", nil).
			WithContext("turn_id", turnID).
			WithContext("max_rounds", s.maxToolRounds)
}

func (s *Service) callProvider(ctx context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	llmCtx, llmSpan := s.tracer.Start(ctx, "Assistant.LLM.Chat")
	llmSpan.SetAttributes(telemetry.LLMAttributes(s.model, "", len(req.Messages), 0)...)
	start := time.Now()

	value, err := resilience.WithTimeoutResult(llmCtx,
		resilience.TimeoutConfig{Duration: s.providerTimeout},
		func(ctx context.Context) (interface{}, error) {
			return s.provider.Chat(ctx, req)
		})

	durationMs := time.Since(start).Seconds() * 1000
	llmLatencyMs.Record(ctx, durationMs)
	if err != nil {
		llmSpan.End()
		return nil, err
	}

	resp := value.(*llm.ChatResponse)
	llmSpan.SetAttributes(telemetry.LLMAttributes(s.model, "", len(req.Messages), len(resp.ToolCalls))...)
	llmSpan.SetAttributes(telemetry.LLMUsageAttributes(resp.Usage.PromptTokens, resp.Usage.CompletionTokens, durationMs)...)
	llmSpan.End()
	return resp, nil
}

// executeTool runs one provider-requested tool call. Failures never escape:
// a timeout or executor panic-free error becomes an error-shaped payload
// that flows back to the provider like any other result.
func (s *Service) executeTool(ctx context.Context, log *slog.Logger, call llm.ToolCall) any {
	name := call.Function.Name
	toolCtx, toolSpan := s.tracer.Start(ctx, "Assistant.Tool.Call")
	start := time.Now()

	value, err := resilience.WithTimeoutResult(toolCtx,
		resilience.TimeoutConfig{Duration: s.toolTimeout},
		func(ctx context.Context) (interface{}, error) {
			return s.registry.Execute(ctx, name, call.Function.Arguments), nil
		})

	durationMs := time.Since(start).Seconds() * 1000
	toolLatencyMs.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("tool.name", name),
	))

	var payload any
	success := err == nil
	if err != nil {
		payload = tools.ErrorResult("tool %s timed out", name)
		log.WarnContext(toolCtx, "assistant.tool.error",
			slog.String("tool", name),
			slog.String("tool_call_id", call.ID),
			slog.String("error", err.Error()),
		)
	} else {
		payload = value
		if m, ok := value.(map[string]any); ok {
			if _, failed := m["error"]; failed {
				success = false
				log.WarnContext(toolCtx, "assistant.tool.error",
					slog.String("tool", name),
					slog.String("tool_call_id", call.ID),
					slog.String("error", fmt.Sprint(m["error"])),
				)
			}
		}
	}

	toolSpan.SetAttributes(telemetry.ToolCallAttributes(name, call.ID, durationMs, success)...)
	toolSpan.SetAttributes(telemetry.ToolCallArgsResult(call.Function.Arguments, fmt.Sprint(payload), 500)...)
	toolSpan.End()

	if success {
		log.InfoContext(toolCtx, "assistant.tool.complete",
			slog.String("tool", name),
			slog.String("tool_call_id", call.ID),
		)
	}
	return payload
}
