// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

// Package ollama embeds asset descriptions and brand document chunks for
// similarity search, using an Ollama-compatible embeddings endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/atelier-ai/atelier/pkg/errors"
	"github.com/atelier-ai/atelier/pkg/vector"
)

const (
	defaultBaseURL = "http://localhost:11434"
	defaultModel   = "nomic-embed-text"

	// embeddingDim must match the dimension of the asset and document
	// collections; a model producing a different width would corrupt
	// searches silently, so it is rejected here.
	embeddingDim = 768
)

// Embedder converts query and document text into vectors.
type Embedder struct {
	baseURL string
	model   string
	client  *http.Client
}

// NewEmbedder creates an Embedder against the service at baseURL using the
// given model. Empty arguments fall back to the local Ollama defaults.
func NewEmbedder(baseURL, model string) *Embedder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Embedder{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed implements vector.Embedder.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New(errors.CodeInvalidInput, "cannot embed empty text", nil)
	}

	body, err := json.Marshal(embedRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, errors.New(errors.CodeInternal, "failed to encode embedding request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/api/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, errors.New(errors.CodeInternal, "failed to create embedding request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, errors.New(errors.CodeCollaborator, "embedding service unreachable", err).
			WithRecoverable(true)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.CodeCollaborator, "embedding service rejected the request", nil).
			WithContext("status", resp.StatusCode).
			WithRecoverable(true)
	}

	var decoded embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, errors.New(errors.CodeCollaborator, "failed to decode embedding response", err)
	}
	if len(decoded.Embedding) != embeddingDim {
		return nil, errors.New(errors.CodeCollaborator, "embedding dimension mismatch", nil).
			WithContext("model", e.model).
			WithContext("got", len(decoded.Embedding)).
			WithContext("want", embeddingDim)
	}

	out := make([]float32, len(decoded.Embedding))
	for i, v := range decoded.Embedding {
		out[i] = float32(v)
	}
	return out, nil
}

var _ vector.Embedder = (*Embedder)(nil)
