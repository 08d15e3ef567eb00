// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/atelier-ai/atelier/pkg/vector"
)

const (
	searchLimitDefault = 5
	searchLimitMin     = 1
	searchLimitMax     = 20

	assetScoreThreshold    = 0.6
	documentScoreThreshold = 0.7
)

// NewAssetSearch builds the search_assets descriptor over the
// vector-similarity collaborator. Searches are scoped to the caller
// identity carried in the context.
func NewAssetSearch(searcher vector.Searcher) Descriptor {
	return Descriptor{
		Name: "search_assets",
		Description: "Search the user's own asset library (photos, logos, illustrations) by " +
			"semantic similarity. Use when the user asks to find images or files they own.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for, e.g. 'nature photos'",
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
				return ErrorResult("search_assets requires a query")
			}
			limit := args.IntClamped("limit", searchLimitDefault, searchLimitMin, searchLimitMax)
			owner, _ := OwnerFromContext(ctx)

			matches, err := searcher.SearchAssets(ctx, query, owner, vector.SearchOptions{
				Limit:     limit,
				Threshold: assetScoreThreshold,
			})
			if err != nil {
				return ErrorResult("asset search failed: %v", err)
			}
			return matches
		},
	}
}
