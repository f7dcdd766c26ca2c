package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_index.go -package=mocks pdfchat/internal/vectorstore Index

import "context"

// Hit pairs a chunk ordinal with its distance to the query vector.
// Smaller distance means a closer match.
type Hit struct {
	Ordinal  int
	Distance float32
}

// Index stores fixed-dimension embeddings keyed by chunk ordinal.
// Entries are only ever bulk-cleared and re-inserted; there is no
// update-in-place.
type Index interface {
	// Reset clears all entries. Idempotent.
	Reset(ctx context.Context) error

	// Insert appends one entry. Fails when the vector dimension does not
	// match the index dimension.
	Insert(ctx context.Context, ordinal int, vec []float32) error

	// Search returns the min(k, count) nearest entries ordered by ascending
	// distance, ties broken by lower ordinal. Searching an empty index
	// returns no hits.
	Search(ctx context.Context, query []float32, k int) ([]Hit, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Dimension returns the fixed vector dimension D.
	Dimension() int
}
