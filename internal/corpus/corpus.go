package corpus

import "fmt"

// Chunk is an immutable slice of a document's text together with its
// provenance. The ordinal is assigned by the Store at append time and links
// the chunk to its embedding in the vector index.
type Chunk struct {
	Text        string
	Ordinal     int
	Page        int // 1-based page number in the source document
	IndexInPage int // 1-based chunk position within the page
}

// Label returns the provenance label reported to callers,
// e.g. "Page 2, Chunk 1".
func (c Chunk) Label() string {
	return fmt.Sprintf("Page %d, Chunk %d", c.Page, c.IndexInPage)
}

// Store is the ordered collection of chunks for the current corpus
// generation. Ordinals are zero-based, assigned in insertion order, and
// reset by Clear. The Store is not safe for concurrent use; the retrieval
// engine serializes access.
type Store struct {
	chunks []Chunk
}

// NewStore creates an empty corpus store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a chunk and returns the ordinal it was assigned.
func (s *Store) Append(text string, page, indexInPage int) Chunk {
	c := Chunk{
		Text:        text,
		Ordinal:     len(s.chunks),
		Page:        page,
		IndexInPage: indexInPage,
	}
	s.chunks = append(s.chunks, c)
	return c
}

// Get returns the chunk at the given ordinal. ok is false when the ordinal
// does not resolve to a chunk in the current generation.
func (s *Store) Get(ordinal int) (Chunk, bool) {
	if ordinal < 0 || ordinal >= len(s.chunks) {
		return Chunk{}, false
	}
	return s.chunks[ordinal], true
}

// Len returns the number of chunks in the current generation.
func (s *Store) Len() int {
	return len(s.chunks)
}

// Clear discards all chunks. The next Append is assigned ordinal 0.
func (s *Store) Clear() {
	s.chunks = nil
}
