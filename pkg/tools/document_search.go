// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/atelier-ai/atelier/pkg/vector"
)

// NewDocumentSearch builds the search_documents descriptor over the brand
// document corpus. The document threshold is stricter than the asset one:
// prose matches are only useful when they are close.
func NewDocumentSearch(searcher vector.Searcher) Descriptor {
	return Descriptor{
		Name: "search_documents",
		Description: "Search the user's brand documents and guidelines by semantic similarity. " +
			"Use when the user asks about brand rules, tone of voice, or written guidance.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for, e.g. 'logo usage rules'",
				},
				"limit": map[string]any{
					"type":        "integer",
					"description": "Maximum results to return",
					"minimum":     searchLimitMin,
					"maximum":     searchLimitMax,
					"default":     searchLimitDefault,
				},
			},
			"required": []string{"query"},
		},
		Execute: func(ctx context.Context, args Arguments) any {
			query := args.String("query")
			if query == "" {
				return ErrorResult("search_documents requires a query")
			}
			limit := args.IntClamped("limit", searchLimitDefault, searchLimitMin, searchLimitMax)
			owner, _ := OwnerFromContext(ctx)

			chunks, err := searcher.SearchDocumentChunks(ctx, query, owner, vector.SearchOptions{
				Limit:     limit,
				Threshold: documentScoreThreshold,
			})
			if err != nil {
				return ErrorResult("document search failed: %v", err)
			}
			return chunks
		},
	}
}
