// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package tools holds the fixed catalog of callable tools exposed to the
// completion provider. Each descriptor binds a tool name and parameter
// schema to exactly one collaborator capability; executors clamp their
// arguments and convert every collaborator failure into an error-shaped
// result instead of propagating it.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/atelier-ai/atelier/pkg/llm"
)

// Arguments are the decoded tool-call arguments after JSON parsing.
type Arguments map[string]any

// String returns the named string argument, or "" when absent.
func (a Arguments) String(key string) string {
	if v, ok := a[key].(string); ok {
		return v
	}
	return ""
}

// IntClamped returns the named integer argument clamped into [min, max],
// or def when the argument is absent or not numeric. JSON numbers decode
// as float64, so both forms are accepted.
func (a Arguments) IntClamped(key string, def, min, max int) int {
	value := def
	switch v := a[key].(type) {
	case float64:
		value = int(v)
	case int:
		value = v
	}
	if value < min {
		value = min
	}
	if value > max {
		value = max
	}
	return value
}

// ExecuteFunc runs a tool. Implementations never return a Go error for
// collaborator failures; they return an error-shaped result instead.
type ExecuteFunc func(ctx context.Context, args Arguments) any

// Descriptor binds a tool name, description, and parameter schema to an
// executor.
type Descriptor struct {
	Name        string
	Description string
	Parameters  map[string]any // JSON Schema
	Execute     ExecuteFunc
}

// Definition returns the provider-facing tool definition.
func (d Descriptor) Definition() llm.Tool {
	return llm.Tool{
		Type: llm.ToolTypeFunction,
		Function: llm.FunctionDef{
			Name:        d.Name,
			Description: d.Description,
			Parameters:  d.Parameters,
		},
	}
}

// ErrorResult builds the error-shaped payload returned when a tool cannot
// complete. It is a real result: it flows back to the provider and into the
// turn's tool outputs like any other payload.
func ErrorResult(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}

// Registry is the ordered catalog of registered tools.
type Registry struct {
	ordered []Descriptor
	byName  map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]int)}
}

// Register appends a descriptor. Registering a duplicate name replaces the
// earlier entry in place, preserving order.
func (r *Registry) Register(d Descriptor) {
	if i, ok := r.byName[d.Name]; ok {
		r.ordered[i] = d
		return
	}
	r.byName[d.Name] = len(r.ordered)
	r.ordered = append(r.ordered, d)
}

// Resolve returns the descriptor for name.
func (r *Registry) Resolve(name string) (Descriptor, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	return r.ordered[i], true
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, d := range r.ordered {
		names = append(names, d.Name)
	}
	return names
}

// Definitions returns provider-facing definitions in registration order.
func (r *Registry) Definitions() []llm.Tool {
	defs := make([]llm.Tool, 0, len(r.ordered))
	for _, d := range r.ordered {
		defs = append(defs, d.Definition())
	}
	return defs
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// Execute resolves name, decodes rawArgs, and runs the tool. An unknown
// tool or undecodable arguments produce an error-shaped result, never a
// Go error: the exchange with the provider always continues.
func (r *Registry) Execute(ctx context.Context, name, rawArgs string) any {
	d, ok := r.Resolve(name)
	if !ok {
		return ErrorResult("unknown tool: %s", name)
	}

	args := Arguments{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return ErrorResult("invalid arguments for %s: %v", name, err)
		}
	}

	return d.Execute(ctx, args)
}
