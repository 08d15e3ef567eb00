// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package assistant

import "strings"

// Action tags the best-effort next step derived from the user text on the
// fallback path.
const (
	ActionNone         = "none"
	ActionOpenTemplate = "open_template"
	ActionApplyBrand   = "apply_brand"
	ActionUploadAsset  = "upload_asset"
)

// suggestionRule maps trigger keywords to a canned suggestion set.
type suggestionRule struct {
	terms       []string
	suggestions []string
}

// actionRule maps trigger keywords to an action tag.
type actionRule struct {
	action string
	terms  []string
}

// The classifier tables are ordered: the first matching rule wins.
var suggestionRules = []suggestionRule{
	{
		terms: []string{"logo", "brand mark", "branding", "icon design"},
		suggestions: []string{
			"Create a new logo from a template",
			"Review your existing logo variations",
			"Check logo usage rules in your brand guidelines",
			"Explore logo color alternatives",
		},
	},
	{
		terms: []string{"instagram", "social", "facebook", "tiktok", "post", "story"},
		suggestions: []string{
			"Design an Instagram post from your brand kit",
			"Resize an existing design for another platform",
			"Browse social media templates",
			"Schedule a batch of social designs",
		},
	},
	{
		terms: []string{"presentation", "slide", "deck", "pitch"},
		suggestions: []string{
			"Start a presentation from a branded template",
			"Apply your brand colors to an existing deck",
			"Browse presentation layouts",
			"Import slides from an earlier project",
		},
	},
}

// defaultSuggestions is returned when no suggestion rule matches.
var defaultSuggestions = []string{
	"Search your asset library",
	"Browse design templates",
	"Review your brand guidelines",
	"Upload new assets",
}

var actionRules = []actionRule{
	{action: ActionOpenTemplate, terms: []string{"template", "browse", "open a design", "start a design"}},
	{action: ActionApplyBrand, terms: []string{"apply brand", "brand color", "brand kit", "rebrand"}},
	{action: ActionUploadAsset, terms: []string{"upload", "add a file", "import"}},
}

// FallbackResponder is the local heuristic answer engine used whenever the
// orchestration path is unavailable. It is pure and synchronous: no
// network, no side effects, always a well-formed result.
type FallbackResponder struct{}

// NewFallbackResponder creates a responder over the built-in tables.
func NewFallbackResponder() *FallbackResponder {
	return &FallbackResponder{}
}

// Respond classifies the user text into a suggestion set and an action tag.
// The two classifications are independent.
func (r *FallbackResponder) Respond(text string) Result {
	normalized := strings.ToLower(text)

	suggestions := defaultSuggestions
	for _, rule := range suggestionRules {
		if containsAny(normalized, rule.terms) {
			suggestions = rule.suggestions
			break
		}
	}

	action := ActionNone
	for _, rule := range actionRules {
		if containsAny(normalized, rule.terms) {
			action = rule.action
			break
		}
	}

	return Result{
		Text: "I'm running in offline mode right now, so I can't reach your full workspace. " +
			"Here are some things you could try:",
		Suggestions: append([]string(nil), suggestions...),
		Action:      action,
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}
