package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/search" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Location != "Barcelona, ES" {
			t.Errorf("location = %q, want the configured hint", req.Location)
		}
		json.NewEncoder(w).Encode(searchResponse{Results: []Result{
			{Title: "Design trends 2026", URL: "https://example.com/trends", Snippet: "..."},
			{Title: "Color of the year", URL: "https://example.com/color"},
		}})
	}))
	defer srv.Close()

	results, err := NewClient(srv.URL, "Barcelona, ES").Search(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "Design trends 2026" {
		t.Errorf("results out of order: %+v", results)
	}
}

func TestClientSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "").Search(context.Background()); err == nil {
		t.Error("expected error on 502")
	}
}

func TestClientSearchUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL, "").Search(context.Background()); err == nil {
		t.Error("expected error on bad body")
	}
}
