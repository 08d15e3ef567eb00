// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"

	"github.com/atelier-ai/atelier/pkg/vision"
)

// NewAnalyzeImage builds the analyze_image descriptor over the
// image-analysis collaborator. The collaborator contract already never
// throws, so the executor only guards the missing-argument case.
func NewAnalyzeImage(analyzer vision.Analyzer) Descriptor {
	return Descriptor{
		Name: "analyze_image",
		Description: "Analyze an image by URL and describe its dominant colors and visual " +
			"features. Use when the user asks what is in an image or which colors it uses.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"imageUrl": map[string]any{
					"type":        "string",
					"description": "Publicly reachable URL of the image to analyze",
				},
			},
			"required": []string{"imageUrl"},
		},
		Execute: func(ctx context.Context, args Arguments) any {
			imageURL := args.String("imageUrl")
			if imageURL == "" {
				return ErrorResult("analyze_image requires an imageUrl")
			}
			return analyzer.AnalyzeImage(ctx, imageURL)
		},
	}
}
