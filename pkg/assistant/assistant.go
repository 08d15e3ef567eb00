// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package assistant implements the tool-orchestration core: one user
// message in, one guardrailed, possibly tool-assisted answer out. The
// completion provider decides which registered tools to invoke; this
// package validates the calls, executes them against collaborators, and
// keeps the whole turn failure-proof.
package assistant

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/atelier-ai/atelier/pkg/guardrails"
	"github.com/atelier-ai/atelier/pkg/llm"
	"github.com/atelier-ai/atelier/pkg/tools"
	"github.com/atelier-ai/atelier/pkg/vector"
	"github.com/atelier-ai/atelier/pkg/vision"
	"github.com/atelier-ai/atelier/pkg/websearch"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const defaultInstructions = "You are Atelier, a creative assistant for a design workspace. " +
	"You help users find their own assets, consult their brand documents, analyze images, " +
	"and research current design trends. Use the available tools when they help; answer " +
	"directly when they do not. Keep answers short and concrete."

// ChatContext carries the caller identity for one turn.
type ChatContext struct {
	UserID string
}

// ToolOutput is one completed tool invocation: the tool name and the real
// payload it returned. Order matches execution order within the turn.
type ToolOutput struct {
	Name   string `json:"name"`
	Output any    `json:"output"`
}

// Result is the outcome of one conversation turn. Every field is always
// well-formed: no code path returns a raw error to the caller.
type Result struct {
	Text        string       `json:"assistant_text"`
	ToolOutputs []ToolOutput `json:"toolOutputs,omitempty"`
	TraceID     string       `json:"traceId,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
	Action      string       `json:"action,omitempty"`
}

// Output returns the output recorded for the named tool, if any. When the
// tool ran more than once in the turn, the first invocation wins.
func (r Result) Output(name string) (any, bool) {
	for _, out := range r.ToolOutputs {
		if out.Name == name {
			return out.Output, true
		}
	}
	return nil, false
}

// Service is the process-wide assistant. Its configuration is built exactly
// once by Initialize and never mutated afterwards; everything else is
// per-turn state that dies with the turn.
type Service struct {
	name         string
	model        string
	instructions string

	provider  llm.Provider
	searcher  vector.Searcher
	analyzer  vision.Analyzer
	webSearch websearch.Provider

	guardrail *guardrails.TopicFilter
	responder *FallbackResponder
	registry  *tools.Registry
	checkers  []*CollaboratorChecker

	maxToolRounds   int
	providerTimeout time.Duration
	toolTimeout     time.Duration

	tracer trace.Tracer

	initOnce    sync.Once
	initialized atomic.Bool
}

// Option configures a Service instance.
type Option func(*Service)

// WithProvider sets the completion provider. Leaving it unset (for example
// when the provider credential is missing) keeps the service in fallback
// mode.
func WithProvider(p llm.Provider) Option {
	return func(s *Service) { s.provider = p }
}

// WithSearcher sets the vector-similarity collaborator.
func WithSearcher(searcher vector.Searcher) Option {
	return func(s *Service) { s.searcher = searcher }
}

// WithAnalyzer sets the image-analysis collaborator.
func WithAnalyzer(analyzer vision.Analyzer) Option {
	return func(s *Service) { s.analyzer = analyzer }
}

// WithWebSearch sets the web-search collaborator.
func WithWebSearch(provider websearch.Provider) Option {
	return func(s *Service) { s.webSearch = provider }
}

// WithModel sets the model identifier sent to the provider.
func WithModel(model string) Option {
	return func(s *Service) { s.model = model }
}

// WithInstructions overrides the system instructions.
func WithInstructions(instructions string) Option {
	return func(s *Service) { s.instructions = instructions }
}

// WithGuardrailPolicy overrides the forbidden-topic policy.
func WithGuardrailPolicy(policy guardrails.Policy) Option {
	return func(s *Service) { s.guardrail = guardrails.NewTopicFilter(policy) }
}

// WithMaxToolRounds bounds the number of provider tool rounds per turn.
func WithMaxToolRounds(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxToolRounds = n
		}
	}
}

// WithProviderTimeout bounds each completion provider call.
func WithProviderTimeout(d time.Duration) Option {
	return func(s *Service) { s.providerTimeout = d }
}

// WithToolTimeout bounds each tool execution.
func WithToolTimeout(d time.Duration) Option {
	return func(s *Service) { s.toolTimeout = d }
}

// New creates a Service. Call Initialize before Chat; an uninitialized
// service still answers every turn through the fallback responder.
func New(name string, opts ...Option) *Service {
	s := &Service{
		name:            name,
		model:           "gpt-5-mini",
		instructions:    defaultInstructions,
		guardrail:       guardrails.NewTopicFilter(guardrails.DefaultPolicy()),
		responder:       NewFallbackResponder(),
		registry:        tools.NewRegistry(),
		maxToolRounds:   8,
		providerTimeout: 60 * time.Second,
		toolTimeout:     20 * time.Second,
		tracer:          otel.Tracer("atelier/assistant"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize builds the process-wide configuration exactly once. It never
// returns an error to the caller: a missing provider keeps the service in
// fallback mode, and a failed collaborator only omits that collaborator's
// tools from the registry. Concurrent calls converge on a single build.
func (s *Service) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		s.build(ctx)
	})
}

func (s *Service) build(ctx context.Context) {
	log := slog.Default()

	if s.provider == nil {
		log.Warn("assistant.init.no_provider",
			slog.String("assistant", s.name),
		)
		return
	}

	// Collaborators run their own initialization concurrently; both are
	// awaited before the configuration is marked ready.
	var wg sync.WaitGroup
	var searcherErr, analyzerErr error

	if init, ok := s.searcher.(vector.Initializer); ok && s.searcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			searcherErr = init.Init(ctx)
		}()
	}
	if init, ok := s.analyzer.(vision.Initializer); ok && s.analyzer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			analyzerErr = init.Init(ctx)
		}()
	}
	wg.Wait()

	if s.searcher != nil && searcherErr == nil {
		s.registry.Register(tools.NewAssetSearch(s.searcher))
		s.registry.Register(tools.NewDocumentSearch(s.searcher))
	} else if searcherErr != nil {
		log.Warn("assistant.init.collaborator_unavailable",
			slog.String("assistant", s.name),
			slog.String("collaborator", "vector"),
			slog.String("error", searcherErr.Error()),
		)
	}

	if s.analyzer != nil && analyzerErr == nil {
		s.registry.Register(tools.NewAnalyzeImage(s.analyzer))
	} else if analyzerErr != nil {
		log.Warn("assistant.init.collaborator_unavailable",
			slog.String("assistant", s.name),
			slog.String("collaborator", "vision"),
			slog.String("error", analyzerErr.Error()),
		)
	}

	// Health probes reuse each collaborator's own init step; the outcome
	// just observed seeds the cache so polling stays cheap.
	if init, ok := s.searcher.(vector.Initializer); ok {
		checker := NewCollaboratorChecker("vector", init.Init)
		checker.seed(searcherErr)
		s.checkers = append(s.checkers, checker)
	}
	if init, ok := s.analyzer.(vision.Initializer); ok {
		checker := NewCollaboratorChecker("vision", init.Init)
		checker.seed(analyzerErr)
		s.checkers = append(s.checkers, checker)
	}

	if s.webSearch != nil {
		s.registry.Register(tools.NewWebSearch(s.webSearch))
	}

	s.initialized.Store(true)
	log.Info("assistant.init.ready",
		slog.String("assistant", s.name),
		slog.String("model", s.model),
		slog.Int("tools", s.registry.Len()),
	)
}

// Initialized reports whether the agent configuration has been built.
func (s *Service) Initialized() bool {
	return s.initialized.Load()
}

// Registry exposes the tool catalog, for serving the same tools over other
// surfaces such as MCP.
func (s *Service) Registry() *tools.Registry {
	return s.registry
}
