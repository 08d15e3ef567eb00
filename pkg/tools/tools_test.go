// Copyright 2026 © The Atelier Authors
// SPDX-License-Identifier: Apache-2.0

package tools

import (
	"context"
	"fmt"
	"testing"

	"github.com/atelier-ai/atelier/pkg/vector"
	"github.com/atelier-ai/atelier/pkg/vision"
)

// fakeSearcher records the options it was called with.
type fakeSearcher struct {
	lastQuery   string
	lastOwner   string
	lastOptions vector.SearchOptions
	assets      []vector.AssetMatch
	chunks      []vector.DocumentChunk
	err         error
}

func (f *fakeSearcher) SearchAssets(ctx context.Context, query, ownerID string, opts vector.SearchOptions) ([]vector.AssetMatch, error) {
	f.lastQuery, f.lastOwner, f.lastOptions = query, ownerID, opts
	return f.assets, f.err
}

func (f *fakeSearcher) SearchDocumentChunks(ctx context.Context, query, ownerID string, opts vector.SearchOptions) ([]vector.DocumentChunk, error) {
	f.lastQuery, f.lastOwner, f.lastOptions = query, ownerID, opts
	return f.chunks, f.err
}

func TestAssetSearchClampsLimit(t *testing.T) {
	tests := []struct {
		name      string
		rawArgs   string
		wantLimit int
	}{
		{name: "below range", rawArgs: `{"query":"nature","limit":0}`, wantLimit: 1},
		{name: "above range", rawArgs: `{"query":"nature","limit":50}`, wantLimit: 20},
		{name: "in range", rawArgs: `{"query":"nature","limit":7}`, wantLimit: 7},
		{name: "absent defaults", rawArgs: `{"query":"nature"}`, wantLimit: 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			searcher := &fakeSearcher{}
			reg := NewRegistry()
			reg.Register(NewAssetSearch(searcher))

			reg.Execute(context.Background(), "search_assets", tc.rawArgs)
			if searcher.lastOptions.Limit != tc.wantLimit {
				t.Errorf("limit = %d, want %d", searcher.lastOptions.Limit, tc.wantLimit)
			}
		})
	}
}

func TestAssetSearchThresholdAndOwnerScope(t *testing.T) {
	searcher := &fakeSearcher{}
	d := NewAssetSearch(searcher)

	ctx := WithOwner(context.Background(), "user-7")
	d.Execute(ctx, Arguments{"query": "nature"})

	if searcher.lastOwner != "user-7" {
		t.Errorf("owner = %q, want user-7", searcher.lastOwner)
	}
	if searcher.lastOptions.Threshold != 0.6 {
		t.Errorf("asset threshold = %v, want 0.6", searcher.lastOptions.Threshold)
	}

	d = NewDocumentSearch(searcher)
	d.Execute(ctx, Arguments{"query": "tone of voice"})
	if searcher.lastOptions.Threshold != 0.7 {
		t.Errorf("document threshold = %v, want 0.7", searcher.lastOptions.Threshold)
	}
}

func TestAssetSearchCollaboratorFailureIsErrorShaped(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("qdrant unavailable")}
	d := NewAssetSearch(searcher)

	result := d.Execute(context.Background(), Arguments{"query": "nature"})
	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected error-shaped map, got %T", result)
	}
	if m["error"] == nil || m["error"] == "" {
		t.Error("error marker missing")
	}
}

func TestAssetSearchMissingQuery(t *testing.T) {
	d := NewAssetSearch(&fakeSearcher{})
	result := d.Execute(context.Background(), Arguments{})
	if m, ok := result.(map[string]any); !ok || m["error"] == nil {
		t.Error("missing query should produce an error-shaped result")
	}
}

type fakeAnalyzer struct {
	analysis vision.Analysis
}

func (f *fakeAnalyzer) AnalyzeImage(ctx context.Context, imageURL string) vision.Analysis {
	return f.analysis
}

func TestAnalyzeImage(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: vision.Analysis{
		Colors:   []vision.Color{{Hex: "#336699"}},
		Features: []string{"landscape"},
	}}
	d := NewAnalyzeImage(analyzer)

	result := d.Execute(context.Background(), Arguments{"imageUrl": "https://example.com/a.png"})
	analysis, ok := result.(vision.Analysis)
	if !ok {
		t.Fatalf("expected vision.Analysis, got %T", result)
	}
	if analysis.Failed() {
		t.Errorf("unexpected error: %s", analysis.Error)
	}
	if len(analysis.Colors) != 1 || analysis.Colors[0].Hex != "#336699" {
		t.Error("analysis payload not passed through")
	}
}

func TestRegistryExecuteUnknownTool(t *testing.T) {
	reg := NewRegistry()
	result := reg.Execute(context.Background(), "no_such_tool", "{}")
	if m, ok := result.(map[string]any); !ok || m["error"] == nil {
		t.Error("unknown tool should produce an error-shaped result")
	}
}

func TestRegistryExecuteBadArguments(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewAssetSearch(&fakeSearcher{}))

	result := reg.Execute(context.Background(), "search_assets", "{not json")
	if m, ok := result.(map[string]any); !ok || m["error"] == nil {
		t.Error("undecodable arguments should produce an error-shaped result")
	}
}

func TestRegistryOrderAndNames(t *testing.T) {
	reg := NewRegistry()
	reg.Register(NewAssetSearch(&fakeSearcher{}))
	reg.Register(NewDocumentSearch(&fakeSearcher{}))
	reg.Register(NewAnalyzeImage(&fakeAnalyzer{}))

	want := []string{"search_assets", "search_documents", "analyze_image"}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	defs := reg.Definitions()
	if len(defs) != 3 {
		t.Fatalf("expected 3 definitions, got %d", len(defs))
	}
	if defs[0].Function.Name != "search_assets" {
		t.Error("definitions should preserve registration order")
	}
}
