package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MockProvider is a testing implementation of Provider.
type MockProvider struct {
	Response string
	Err      error
	ChatFunc func(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

func (m *MockProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, req)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &ChatResponse{
		Content: m.Response,
		Usage: Usage{
			PromptTokens:     10,
			CompletionTokens: 10,
			TotalTokens:      20,
		},
	}, nil
}

// ScriptedResponse defines one round returned by a ScriptedProvider.
type ScriptedResponse struct {
	Content   string
	ToolCalls []ToolCall
	Error     error
	Usage     Usage
}

// ScriptedProvider replays a pre-defined sequence of responses and captures
// every request it receives. Useful for testing multi-round tool exchanges.
type ScriptedProvider struct {
	mu        sync.Mutex
	responses []ScriptedResponse
	index     int
	requests  []ChatRequest
}

// NewScriptedProvider creates a provider with no queued responses.
func NewScriptedProvider() *ScriptedProvider {
	return &ScriptedProvider{}
}

// AddResponse queues a plain-text response.
func (p *ScriptedProvider) AddResponse(content string) *ScriptedProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, ScriptedResponse{Content: content})
	return p
}

// AddToolCallResponse queues a tool-invocation round.
func (p *ScriptedProvider) AddToolCallResponse(toolCalls ...ToolCall) *ScriptedProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, ScriptedResponse{ToolCalls: toolCalls})
	return p
}

// AddErrorResponse queues an error round.
func (p *ScriptedProvider) AddErrorResponse(err error) *ScriptedProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append(p.responses, ScriptedResponse{Error: err})
	return p
}

// Chat implements Provider.
func (p *ScriptedProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.requests = append(p.requests, req)

	if p.index >= len(p.responses) {
		return nil, fmt.Errorf("scripted provider: no more responses (call %d)", p.index+1)
	}

	resp := p.responses[p.index]
	p.index++

	if resp.Error != nil {
		return nil, resp.Error
	}
	return &ChatResponse{
		Content:   resp.Content,
		ToolCalls: resp.ToolCalls,
		Usage:     resp.Usage,
	}, nil
}

// Requests returns all captured requests.
func (p *ScriptedProvider) Requests() []ChatRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ChatRequest, len(p.requests))
	copy(out, p.requests)
	return out
}

// CallCount returns the number of Chat calls made.
func (p *ScriptedProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.requests)
}

// NewToolCall builds a ToolCall with JSON-encoded arguments, for tests.
func NewToolCall(id, name string, args map[string]any) ToolCall {
	raw, _ := json.Marshal(args)
	return ToolCall{
		ID:   id,
		Type: ToolTypeFunction,
		Function: FunctionCall{
			Name:      name,
			Arguments: string(raw),
		},
	}
}
