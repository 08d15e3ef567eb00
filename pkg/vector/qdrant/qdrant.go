// Package qdrant implements the vector.Searcher contract against a Qdrant
// instance over gRPC. Assets and brand documents live in separate
// collections; every point carries an owner_id payload field used to scope
// searches to the caller's own library.
package qdrant

import (
	"context"
	"fmt"

	"github.com/atelier-ai/atelier/pkg/vector"
	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const vectorSize = 768

// Store is a Qdrant-backed vector.Searcher.
type Store struct {
	points      pb.PointsClient
	collections pb.CollectionsClient
	embedder    vector.Embedder

	assetCollection    string
	documentCollection string
}

// New connects to Qdrant at addr and returns a Store searching the given
// collections with the given embedder.
func New(addr string, embedder vector.Embedder, assetCollection, documentCollection string) (*Store, error) {
	conn, err := grpc.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("did not connect: %v", err)
	}

	return &Store{
		points:             pb.NewPointsClient(conn),
		collections:        pb.NewCollectionsClient(conn),
		embedder:           embedder,
		assetCollection:    assetCollection,
		documentCollection: documentCollection,
	}, nil
}

// Init ensures both collections exist. Safe to call on every startup;
// an already-existing collection is not an error.
func (s *Store) Init(ctx context.Context) error {
	for _, name := range []string{s.assetCollection, s.documentCollection} {
		exists, err := s.collections.CollectionExists(ctx, &pb.CollectionExistsRequest{
			CollectionName: name,
		})
		if err != nil {
			return fmt.Errorf("failed to check collection %s: %w", name, err)
		}
		if exists.GetResult().GetExists() {
			continue
		}
		_, err = s.collections.Create(ctx, &pb.CreateCollection{
			CollectionName: name,
			VectorsConfig: &pb.VectorsConfig{
				Config: &pb.VectorsConfig_Params{
					Params: &pb.VectorParams{
						Size:     vectorSize,
						Distance: pb.Distance_Cosine,
					},
				},
			},
		})
		if err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}
	return nil
}

// SearchAssets implements vector.Searcher.
func (s *Store) SearchAssets(ctx context.Context, query, ownerID string, opts vector.SearchOptions) ([]vector.AssetMatch, error) {
	points, err := s.search(ctx, s.assetCollection, query, ownerID, opts)
	if err != nil {
		return nil, err
	}

	matches := make([]vector.AssetMatch, 0, len(points))
	for _, p := range points {
		matches = append(matches, vector.AssetMatch{
			ID:       pointID(p.Id),
			Filename: payloadString(p.Payload, "filename"),
			Score:    p.Score,
		})
	}
	return matches, nil
}

// SearchDocumentChunks implements vector.Searcher.
func (s *Store) SearchDocumentChunks(ctx context.Context, query, ownerID string, opts vector.SearchOptions) ([]vector.DocumentChunk, error) {
	points, err := s.search(ctx, s.documentCollection, query, ownerID, opts)
	if err != nil {
		return nil, err
	}

	chunks := make([]vector.DocumentChunk, 0, len(points))
	for _, p := range points {
		chunks = append(chunks, vector.DocumentChunk{
			Text:     payloadString(p.Payload, "text"),
			SourceID: payloadString(p.Payload, "source_id"),
			Score:    p.Score,
		})
	}
	return chunks, nil
}

func (s *Store) search(ctx context.Context, collection, query, ownerID string, opts vector.SearchOptions) ([]*pb.ScoredPoint, error) {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	threshold := opts.Threshold
	req := &pb.SearchPoints{
		CollectionName: collection,
		Vector:         embedding,
		Limit:          uint64(opts.Limit),
		ScoreThreshold: &threshold,
		WithPayload:    &pb.WithPayloadSelector{SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true}},
	}
	if ownerID != "" {
		req.Filter = &pb.Filter{
			Must: []*pb.Condition{
				{
					ConditionOneOf: &pb.Condition_Field{
						Field: &pb.FieldCondition{
							Key: "owner_id",
							Match: &pb.Match{
								MatchValue: &pb.Match_Keyword{Keyword: ownerID},
							},
						},
					},
				},
			},
		}
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}
	return resp.Result, nil
}

func pointID(id *pb.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return fmt.Sprintf("%d", id.GetNum())
}

func payloadString(payload map[string]*pb.Value, key string) string {
	if payload == nil {
		return ""
	}
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

var _ vector.Searcher = (*Store)(nil)
var _ vector.Initializer = (*Store)(nil)
