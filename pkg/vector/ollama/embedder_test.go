// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/atelier-ai/atelier/pkg/errors"
)

func TestEmbedderEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "nomic-embed-text" {
			t.Errorf("model = %q, want the default", req.Model)
		}
		if req.Prompt != "nature photos" {
			t.Errorf("prompt = %q", req.Prompt)
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: make([]float64, embeddingDim)})
	}))
	defer srv.Close()

	vec, err := NewEmbedder(srv.URL, "").Embed(context.Background(), "  nature photos  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != embeddingDim {
		t.Errorf("vector length = %d, want %d", len(vec), embeddingDim)
	}
}

func TestEmbedderRejectsEmptyText(t *testing.T) {
	_, err := NewEmbedder("http://localhost:1", "").Embed(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected error for empty text")
	}
	if errors.AsAtelierError(err).Code != errors.CodeInvalidInput {
		t.Errorf("code = %s, want %s", errors.AsAtelierError(err).Code, errors.CodeInvalidInput)
	}
}

func TestEmbedderServerErrorIsCollaboratorFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewEmbedder(srv.URL, "").Embed(context.Background(), "query")
	if err == nil {
		t.Fatal("expected error on 500")
	}
	if errors.AsAtelierError(err).Code != errors.CodeCollaborator {
		t.Errorf("code = %s, want %s", errors.AsAtelierError(err).Code, errors.CodeCollaborator)
	}
}

func TestEmbedderDimensionMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	_, err := NewEmbedder(srv.URL, "some-other-model").Embed(context.Background(), "query")
	if err == nil {
		t.Fatal("expected error for wrong embedding width")
	}
}
