// SPDX-License-Identifier: Apache-2.0

package assistant

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce sync.Once

	turnCounter      metric.Int64Counter
	turnErrorCounter metric.Int64Counter
	fallbackCounter  metric.Int64Counter
	guardrailCounter metric.Int64Counter
	turnLatencyMs    metric.Float64Histogram
	llmLatencyMs     metric.Float64Histogram
	toolLatencyMs    metric.Float64Histogram
)

// initMetrics creates the assistant meters once. Instrument creation only
// fails on invalid names, so errors are ignored the way the SDK noop
// instruments allow.
func initMetrics() {
	metricsOnce.Do(func() {
		meter := otel.Meter("atelier/assistant")

		turnCounter, _ = meter.Int64Counter(
			"atelier.turns.total",
			metric.WithDescription("Conversation turns by mode"),
		)
		turnErrorCounter, _ = meter.Int64Counter(
			"atelier.turns.errors",
			metric.WithDescription("Turns that hit a provider or tool failure"),
		)
		fallbackCounter, _ = meter.Int64Counter(
			"atelier.turns.fallback",
			metric.WithDescription("Turns answered by the fallback responder"),
		)
		guardrailCounter, _ = meter.Int64Counter(
			"atelier.guardrail.blocked",
			metric.WithDescription("Turns rejected by the guardrail filter"),
		)
		turnLatencyMs, _ = meter.Float64Histogram(
			"atelier.turn.latency_ms",
			metric.WithDescription("End-to-end turn latency in milliseconds"),
		)
		llmLatencyMs, _ = meter.Float64Histogram(
			"atelier.llm.latency_ms",
			metric.WithDescription("Completion provider call latency in milliseconds"),
		)
		toolLatencyMs, _ = meter.Float64Histogram(
			"atelier.tool.latency_ms",
			metric.WithDescription("Tool execution latency in milliseconds"),
		)
	})
}
