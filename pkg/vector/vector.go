// Package vector defines the vector-similarity search contracts consumed by
// the assistant core. The similarity math itself lives behind these
// interfaces; this core only calls into them.
package vector

import "context"

// AssetMatch is one asset returned by a similarity search, highest score first.
type AssetMatch struct {
	ID       string  `json:"id"`
	Filename string  `json:"filename"`
	Score    float32 `json:"score"`
}

// DocumentChunk is one document fragment returned by a similarity search.
type DocumentChunk struct {
	Text     string  `json:"text"`
	SourceID string  `json:"sourceId"`
	Score    float32 `json:"score"`
}

// SearchOptions bounds a similarity query.
type SearchOptions struct {
	Limit     int
	Threshold float32
}

// Searcher performs owner-scoped similarity searches over the asset library
// and the brand document corpus.
type Searcher interface {
	// SearchAssets returns assets owned by ownerID ordered by score descending.
	SearchAssets(ctx context.Context, query, ownerID string, opts SearchOptions) ([]AssetMatch, error)

	// SearchDocumentChunks returns document fragments owned by ownerID
	// ordered by score descending.
	SearchDocumentChunks(ctx context.Context, query, ownerID string, opts SearchOptions) ([]DocumentChunk, error)
}

// Initializer is implemented by searchers that need their own startup step
// (collection creation, connection checks) before first use.
type Initializer interface {
	Init(ctx context.Context) error
}

// Embedder converts text into a vector for similarity search.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
