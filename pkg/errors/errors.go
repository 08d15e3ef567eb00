// SPDX-License-Identifier: Apache-2.0

// Package errors provides typed error handling with rich context for Atelier.
// Every failure in the assistant core maps to one of the codes below so that
// callers and telemetry can classify it without string matching.
package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode classifies Atelier errors for monitoring and recovery.
type ErrorCode string

const (
	// CodeInternal indicates an internal system error.
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// CodeInvalidInput indicates the input was invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeConfig indicates missing or invalid configuration at startup.
	// Non-fatal: the assistant degrades to fallback mode.
	CodeConfig ErrorCode = "CONFIG_ERROR"

	// CodeToolFailure indicates a tool execution failed.
	CodeToolFailure ErrorCode = "TOOL_FAILURE"

	// CodeTimeout indicates an operation exceeded its time limit.
	CodeTimeout ErrorCode = "TIMEOUT"

	// CodeCollaborator indicates an external collaborator (vector search,
	// image analysis, web search) is unavailable or failed to initialize.
	CodeCollaborator ErrorCode = "COLLABORATOR_UNAVAILABLE"

	// CodeLLMError indicates a completion provider error.
	CodeLLMError ErrorCode = "LLM_ERROR"
)

// AtelierError is a typed error with rich context for observability.
// It implements the error interface and can be unwrapped with errors.As().
type AtelierError struct {
	Code        ErrorCode
	Message     string
	Err         error
	Context     map[string]interface{}
	Attributes  map[string]string
	Recoverable bool
}

// Error implements the error interface.
func (e *AtelierError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements errors.Unwrap for error chain traversal.
func (e *AtelierError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements json.Marshaler for structured logging.
func (e *AtelierError) MarshalJSON() ([]byte, error) {
	type Alias AtelierError
	return json.Marshal(&struct {
		Message     string `json:"message"`
		Code        string `json:"code"`
		Err         string `json:"error,omitempty"`
		Recoverable bool   `json:"recoverable"`
		*Alias
	}{
		Message:     e.Error(),
		Code:        string(e.Code),
		Err:         fmt.Sprintf("%v", e.Err),
		Recoverable: e.Recoverable,
		Alias:       (*Alias)(e),
	})
}

// New creates a new AtelierError with the given code, message, and cause.
func New(code ErrorCode, msg string, cause error) *AtelierError {
	return &AtelierError{
		Code:       code,
		Message:    msg,
		Err:        cause,
		Context:    make(map[string]interface{}),
		Attributes: make(map[string]string),
	}
}

// WithContext adds a key-value pair to the error context.
// Returns the error for method chaining.
func (e *AtelierError) WithContext(key string, value interface{}) *AtelierError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithAttribute adds a string attribute for OTEL traces.
// Returns the error for method chaining.
func (e *AtelierError) WithAttribute(key, value string) *AtelierError {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[key] = value
	return e
}

// WithRecoverable sets whether the error can be recovered from.
// Returns the error for method chaining.
func (e *AtelierError) WithRecoverable(recoverable bool) *AtelierError {
	e.Recoverable = recoverable
	return e
}

// AsAtelierError attempts to convert an error to an AtelierError.
// Returns the error as AtelierError if it is one, or wraps it otherwise.
func AsAtelierError(err error) *AtelierError {
	if err == nil {
		return nil
	}
	if ae, ok := err.(*AtelierError); ok {
		return ae
	}
	return New(CodeInternal, "wrapped error", err)
}

// RecoverableString returns "true" or "false" as a string for observability.
func (e *AtelierError) RecoverableString() string {
	if e.Recoverable {
		return "true"
	}
	return "false"
}
