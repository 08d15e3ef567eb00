// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package guardrails provides the deterministic pre-filter that rejects
// out-of-scope requests before any provider or tool call is made.
//
// The filter is pure data: an ordered table of forbidden-topic terms plus a
// fixed redirect message. Matching is case-insensitive substring search, so
// a check costs O(terms × input length) and never touches the network.
package guardrails

import (
	"context"
	"strings"
)

// CheckResult represents the outcome of a guardrail check.
type CheckResult struct {
	// Blocked indicates the request should not proceed.
	Blocked bool

	// Topic is the forbidden-topic category that matched (empty if not blocked).
	Topic string

	// Term is the exact table entry that matched.
	Term string

	// Redirect is the fixed message to return in place of an answer.
	Redirect string
}

// InputChecker validates content before it reaches the provider.
type InputChecker interface {
	// CheckInput examines user input for policy violations.
	CheckInput(ctx context.Context, input string) CheckResult

	// ID returns a unique identifier for this checker.
	ID() string
}

// TopicTerm is one entry in the forbidden-topic table.
type TopicTerm struct {
	Topic string
	Term  string
}

// Policy is the pure-data guardrail policy: an ordered term table and the
// redirect message returned on any match.
type Policy struct {
	Terms    []TopicTerm
	Redirect string
}

// DefaultRedirect is the fixed redirect message for out-of-scope requests.
const DefaultRedirect = "I'm here to help with your creative assets, brand documents, and design work. " +
	"I can't help with that topic, but I'd be happy to help you find assets, review brand guidelines, or explore design ideas."

// DefaultPolicy returns the built-in forbidden-topic table. Order matters:
// the first matching term wins.
func DefaultPolicy() Policy {
	return Policy{
		Redirect: DefaultRedirect,
		Terms: []TopicTerm{
			{Topic: "financial_advice", Term: "investment"},
			{Topic: "financial_advice", Term: "stock market"},
			{Topic: "financial_advice", Term: "crypto"},
			{Topic: "financial_advice", Term: "gambling"},
			{Topic: "medical_advice", Term: "medical advice"},
			{Topic: "medical_advice", Term: "diagnosis"},
			{Topic: "medical_advice", Term: "prescription"},
			{Topic: "legal_advice", Term: "legal advice"},
			{Topic: "legal_advice", Term: "lawsuit"},
			{Topic: "politics", Term: "political opinion"},
			{Topic: "politics", Term: "who should i vote"},
			{Topic: "adult_content", Term: "explicit content"},
		},
	}
}

// TopicFilter blocks requests whose text contains any forbidden-topic term.
type TopicFilter struct {
	policy Policy
}

// NewTopicFilter creates a filter over the given policy.
func NewTopicFilter(policy Policy) *TopicFilter {
	return &TopicFilter{policy: policy}
}

// ID returns the guardrail identifier.
func (f *TopicFilter) ID() string {
	return "topic-filter"
}

// Policy returns the underlying policy table.
func (f *TopicFilter) Policy() Policy {
	return f.policy
}

// CheckInput performs a case-insensitive substring match against the term
// table. Empty or whitespace-only input never matches.
func (f *TopicFilter) CheckInput(ctx context.Context, input string) CheckResult {
	if strings.TrimSpace(input) == "" {
		return CheckResult{Blocked: false}
	}

	normalized := strings.ToLower(input)
	for _, entry := range f.policy.Terms {
		select {
		case <-ctx.Done():
			return CheckResult{Blocked: false}
		default:
		}

		if strings.Contains(normalized, strings.ToLower(entry.Term)) {
			return CheckResult{
				Blocked:  true,
				Topic:    entry.Topic,
				Term:     entry.Term,
				Redirect: f.policy.Redirect,
			}
		}
	}

	return CheckResult{Blocked: false}
}

var _ InputChecker = (*TopicFilter)(nil)
