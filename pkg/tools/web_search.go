// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/atelier-ai/atelier/pkg/websearch"
)

// NewWebSearch builds the web_search descriptor. The caller supplies no
// parameters: the provider chooses its own query text and the collaborator
// is configured with an approximate location hint at construction time.
func NewWebSearch(provider websearch.Provider) Descriptor {
	return Descriptor{
		Name: "web_search",
		Description: "Search the web for current design trends, inspiration, or reference " +
			"material. Takes no parameters.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
			"required":   []string{},
		},
		Execute: func(ctx context.Context, args Arguments) any {
			results, err := provider.Search(ctx)
			if err != nil {
				return ErrorResult("web search failed: %v", err)
			}
			return results
		},
	}
}
