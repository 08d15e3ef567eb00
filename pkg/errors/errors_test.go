// SPDX-License-Identifier: Apache-2.0

package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cause := fmt.Errorf("connection refused")

	tests := []struct {
		name string
		err  *AtelierError
		want string
	}{
		{
			name: "with cause",
			err:  New(CodeLLMError, "provider call failed", cause),
			want: "[LLM_ERROR] provider call failed: connection refused",
		},
		{
			name: "without cause",
			err:  New(CodeConfig, "api key missing", nil),
			want: "[CONFIG_ERROR] api key missing",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New(CodeToolFailure, "tool failed", cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var ae *AtelierError
	if !stderrors.As(err, &ae) {
		t.Fatal("errors.As should extract AtelierError")
	}
	if ae.Code != CodeToolFailure {
		t.Errorf("expected code %s, got %s", CodeToolFailure, ae.Code)
	}
}

func TestChaining(t *testing.T) {
	err := New(CodeTimeout, "operation timed out", nil).
		WithContext("timeout", "5s").
		WithAttribute("component", "provider").
		WithRecoverable(true)

	if err.Context["timeout"] != "5s" {
		t.Error("context value not set")
	}
	if err.Attributes["component"] != "provider" {
		t.Error("attribute not set")
	}
	if !err.Recoverable {
		t.Error("recoverable not set")
	}
	if err.RecoverableString() != "true" {
		t.Errorf("RecoverableString() = %q", err.RecoverableString())
	}
}

func TestAsAtelierError(t *testing.T) {
	if AsAtelierError(nil) != nil {
		t.Error("nil error should return nil")
	}

	plain := fmt.Errorf("plain")
	wrapped := AsAtelierError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("plain errors should wrap as %s, got %s", CodeInternal, wrapped.Code)
	}

	typed := New(CodeCollaborator, "qdrant down", nil)
	if AsAtelierError(typed) != typed {
		t.Error("typed errors should pass through unchanged")
	}
}
