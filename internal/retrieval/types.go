package retrieval

// IngestOptions controls how page text is split before embedding.
// Zero values fall back to the chunker defaults.
type IngestOptions struct {
	ChunkSize int
	Overlap   int
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	// PagesProcessed is the number of page texts consumed.
	PagesProcessed int `json:"pages_processed"`
	// ChunksIndexed is the number of chunks embedded and committed to both
	// the corpus store and the vector index.
	ChunksIndexed int `json:"chunks_processed"`
	// ChunksFailed is the number of chunks skipped because the embedding
	// provider failed for them.
	ChunksFailed int `json:"chunks_failed"`
	// Generation identifies the corpus generation this run produced.
	Generation uint64 `json:"-"`
}

// Result is the outcome of a retrieval query: the assembled context and the
// provenance label of each contributing chunk, nearest first.
type Result struct {
	Context string
	Sources []string
}

// Answer is a generated response together with the sources that backed it.
type Answer struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}
