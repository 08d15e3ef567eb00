// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/atelier-ai/atelier/pkg/errors"
)

func TestWithTimeoutResultCompletes(t *testing.T) {
	value, err := WithTimeoutResult(context.Background(), TimeoutConfig{Duration: time.Second},
		func(ctx context.Context) (interface{}, error) {
			return "ok", nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "ok" {
		t.Errorf("expected ok, got %v", value)
	}
}

func TestWithTimeoutResultExpires(t *testing.T) {
	_, err := WithTimeoutResult(context.Background(), TimeoutConfig{Duration: 10 * time.Millisecond},
		func(ctx context.Context) (interface{}, error) {
			select {
			case <-time.After(time.Second):
				return "late", nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})
	if err == nil {
		t.Fatal("expected timeout error")
	}

	var ae *errors.AtelierError
	if !stderrors.As(err, &ae) {
		t.Fatalf("expected AtelierError, got %T", err)
	}
	if ae.Code != errors.CodeTimeout {
		t.Errorf("expected %s, got %s", errors.CodeTimeout, ae.Code)
	}
	if !ae.Recoverable {
		t.Error("timeouts should be marked recoverable")
	}
}

func TestWithTimeoutZeroDisables(t *testing.T) {
	err := WithTimeout(context.Background(), TimeoutConfig{},
		func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); ok {
				t.Error("zero duration should not set a deadline")
			}
			return nil
		})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
