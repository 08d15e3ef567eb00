// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package guardrails

import (
	"context"
	"testing"
)

func TestTopicFilter(t *testing.T) {
	filter := NewTopicFilter(DefaultPolicy())

	tests := []struct {
		name    string
		input   string
		blocked bool
		topic   string
	}{
		{
			name:    "normal design question",
			input:   "Find me some nature photos in my assets",
			blocked: false,
		},
		{
			name:    "investment question",
			input:   "What's the best investment strategy?",
			blocked: true,
			topic:   "financial_advice",
		},
		{
			name:    "case insensitive",
			input:   "Tell me about INVESTMENT options",
			blocked: true,
			topic:   "financial_advice",
		},
		{
			name:    "medical question",
			input:   "Can you give me a diagnosis for my headache",
			blocked: true,
			topic:   "medical_advice",
		},
		{
			name:    "legal question",
			input:   "I need legal advice about my contract",
			blocked: true,
			topic:   "legal_advice",
		},
		{
			name:    "empty input",
			input:   "",
			blocked: false,
		},
		{
			name:    "whitespace only",
			input:   "   \t\n  ",
			blocked: false,
		},
		{
			name:    "greeting",
			input:   "Hi there!",
			blocked: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := filter.CheckInput(context.Background(), tc.input)
			if result.Blocked != tc.blocked {
				t.Errorf("input %q: expected blocked=%v, got blocked=%v",
					tc.input, tc.blocked, result.Blocked)
			}
			if tc.blocked {
				if result.Topic != tc.topic {
					t.Errorf("expected topic %q, got %q", tc.topic, result.Topic)
				}
				if result.Redirect != DefaultRedirect {
					t.Error("blocked result must carry the fixed redirect message")
				}
			}
		})
	}
}

func TestTopicFilterOrderedFirstMatchWins(t *testing.T) {
	filter := NewTopicFilter(Policy{
		Redirect: "redirect",
		Terms: []TopicTerm{
			{Topic: "first", Term: "shared term"},
			{Topic: "second", Term: "shared term"},
		},
	})

	result := filter.CheckInput(context.Background(), "this has a shared term inside")
	if !result.Blocked {
		t.Fatal("expected block")
	}
	if result.Topic != "first" {
		t.Errorf("first table entry should win, got %q", result.Topic)
	}
}

func TestTopicFilterDeterministic(t *testing.T) {
	filter := NewTopicFilter(DefaultPolicy())
	input := "is crypto a good idea"

	first := filter.CheckInput(context.Background(), input)
	for i := 0; i < 10; i++ {
		got := filter.CheckInput(context.Background(), input)
		if got != first {
			t.Fatalf("check is not deterministic: %+v vs %+v", got, first)
		}
	}
}
