package vectorstore

import (
	"context"
	"fmt"
	"sort"
)

// FlatIndex is an exact brute-force index over squared Euclidean distance.
// At document-corpus scale the O(n*D) scan per query beats any approximate
// structure, so this is the default backend.
//
// FlatIndex is not internally synchronized; the retrieval engine serializes
// access alongside the corpus store.
type FlatIndex struct {
	dim      int
	ordinals []int
	vectors  [][]float32
}

// NewFlatIndex creates an empty index for vectors of the given dimension.
func NewFlatIndex(dim int) (*FlatIndex, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("vector dimension must be greater than 0, got %d", dim)
	}
	return &FlatIndex{dim: dim}, nil
}

// Dimension returns the fixed vector dimension.
func (ix *FlatIndex) Dimension() int { return ix.dim }

// Reset clears all entries.
func (ix *FlatIndex) Reset(_ context.Context) error {
	ix.ordinals = nil
	ix.vectors = nil
	return nil
}

// Count returns the number of stored entries.
func (ix *FlatIndex) Count(_ context.Context) (int, error) {
	return len(ix.vectors), nil
}

// Insert appends one entry for the given chunk ordinal.
func (ix *FlatIndex) Insert(_ context.Context, ordinal int, vec []float32) error {
	if len(vec) != ix.dim {
		return fmt.Errorf("vector dimension mismatch: got %d, want %d", len(vec), ix.dim)
	}
	ix.ordinals = append(ix.ordinals, ordinal)
	ix.vectors = append(ix.vectors, vec)
	return nil
}

// Search scans all entries and returns the k nearest by squared L2 distance.
func (ix *FlatIndex) Search(_ context.Context, query []float32, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0, got %d", k)
	}
	if len(query) != ix.dim {
		return nil, fmt.Errorf("query dimension mismatch: got %d, want %d", len(query), ix.dim)
	}
	if len(ix.vectors) == 0 {
		return []Hit{}, nil
	}

	hits := make([]Hit, len(ix.vectors))
	for i, vec := range ix.vectors {
		hits[i] = Hit{Ordinal: ix.ordinals[i], Distance: squaredL2(query, vec)}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Ordinal < hits[j].Ordinal
	})

	if k > len(hits) {
		k = len(hits)
	}
	return hits[:k], nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
