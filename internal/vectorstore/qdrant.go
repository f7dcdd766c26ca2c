package vectorstore

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"pdfchat/internal/contextutil"
)

// QdrantIndex implements Index against a Qdrant collection. Chunk ordinals
// map to numeric point IDs and the collection uses Euclidean distance so
// hits come back ordered the same way the flat backend orders them.
//
// The collection is dropped and recreated on Reset, matching the
// rebuild-the-whole-corpus ingestion model.
type QdrantIndex struct {
	client     *qdrant.Client
	collection string
	dim        int
}

// NewQdrantIndex creates a Qdrant-backed index. urlStr should be in the
// format "http://host:port" (e.g. "http://localhost:6333"); the gRPC port
// is derived from the HTTP port.
func NewQdrantIndex(urlStr, collection string, dim int) (*QdrantIndex, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("vector dimension must be greater than 0, got %d", dim)
	}
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsedURL.Hostname()
	if host == "" {
		host = "localhost"
	}

	port := 6334 // default gRPC port
	if parsedURL.Port() != "" {
		if httpPort, err := strconv.Atoi(parsedURL.Port()); err == nil {
			// gRPC port is typically HTTP port + 1
			port = httpPort + 1
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantIndex{
		client:     client,
		collection: collection,
		dim:        dim,
	}, nil
}

// Dimension returns the fixed vector dimension.
func (ix *QdrantIndex) Dimension() int { return ix.dim }

// Reset drops the collection if present and recreates it empty.
func (ix *QdrantIndex) Reset(ctx context.Context) error {
	logger := contextutil.LoggerFromContext(ctx)

	exists, err := ix.client.CollectionExists(ctx, ix.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection existence: %w", err)
	}
	if exists {
		if err := ix.client.DeleteCollection(ctx, ix.collection); err != nil {
			return fmt.Errorf("failed to delete collection: %w", err)
		}
	}

	err = ix.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: ix.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(ix.dim),
			Distance: qdrant.Distance_Euclid,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	logger.InfoContext(ctx, "collection reset", "collection", ix.collection, "vector_size", ix.dim)
	return nil
}

// Insert upserts one point keyed by the chunk ordinal.
func (ix *QdrantIndex) Insert(ctx context.Context, ordinal int, vec []float32) error {
	if len(vec) != ix.dim {
		return fmt.Errorf("vector dimension mismatch: got %d, want %d", len(vec), ix.dim)
	}
	if ordinal < 0 {
		return fmt.Errorf("ordinal must not be negative, got %d", ordinal)
	}

	_, err := ix.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: ix.collection,
		Points: []*qdrant.PointStruct{
			{
				Id:      qdrant.NewIDNum(uint64(ordinal)),
				Vectors: qdrant.NewVectors(vec...),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}
	return nil
}

// Search queries the collection for the k nearest points.
func (ix *QdrantIndex) Search(ctx context.Context, query []float32, k int) ([]Hit, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0, got %d", k)
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query dimension mismatch: got %d, want %d", len(query), ix.dim)
	}

	limit := uint64(k)
	scoredPoints, err := ix.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: ix.collection,
		Query:          qdrant.NewQuery(query...),
		Limit:          &limit,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to search points", "collection", ix.collection, "k", k, "error", err)
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	hits := make([]Hit, 0, len(scoredPoints))
	for _, point := range scoredPoints {
		if point.Id == nil {
			continue
		}
		hits = append(hits, Hit{
			Ordinal:  int(point.Id.GetNum()),
			Distance: point.Score,
		})
	}
	return hits, nil
}

// Count returns the number of points in the collection.
func (ix *QdrantIndex) Count(ctx context.Context) (int, error) {
	info, err := ix.client.GetCollectionInfo(ctx, ix.collection)
	if err != nil {
		return 0, fmt.Errorf("failed to get collection info: %w", err)
	}
	if info.PointsCount == nil {
		return 0, nil
	}
	return int(*info.PointsCount), nil
}
