package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"pdfchat/internal/chunker"
	"pdfchat/internal/contextutil"
	"pdfchat/internal/corpus"
	"pdfchat/internal/llm"
	"pdfchat/internal/service"
	"pdfchat/internal/vectorstore"
)

// DefaultTopK is the number of neighbors retrieved when the caller does not
// ask for a specific count.
const DefaultTopK = 3

// contextSeparator joins retrieved chunk texts into the context string.
const contextSeparator = "\n\n---\n\n"

// Service is the coordinator surface the transport layer depends on.
type Service interface {
	// Ingest replaces the current corpus generation with one built from the
	// given ordered page texts.
	Ingest(ctx context.Context, pages []string, opts IngestOptions) (IngestReport, error)

	// Retrieve embeds the question, finds the nearest chunks, and assembles
	// the context string and source labels.
	Retrieve(ctx context.Context, question string, topK int) (Result, error)

	// Ask runs Retrieve and feeds the result to the answer generator.
	Ask(ctx context.Context, question string, topK int) (Answer, error)
}

// Engine owns the corpus generation (corpus store + vector index) and
// enforces single-writer/multi-reader access to it: one ingestion excludes
// everything else, while any number of queries share a stable generation.
type Engine struct {
	embedder  llm.Embedder
	generator llm.Generator

	mu         sync.RWMutex
	index      vectorstore.Index
	corpus     *corpus.Store
	generation uint64

	logger *slog.Logger
}

// NewEngine creates a retrieval engine. The embedder and index must agree on
// the vector dimension; a mismatch here would make every search meaningless,
// so it is rejected up front.
func NewEngine(embedder llm.Embedder, index vectorstore.Index, generator llm.Generator) (*Engine, error) {
	if embedder.Dimension() != index.Dimension() {
		return nil, fmt.Errorf("embedding dimension %d does not match index dimension %d",
			embedder.Dimension(), index.Dimension())
	}
	return &Engine{
		embedder:  embedder,
		generator: generator,
		index:     index,
		corpus:    corpus.NewStore(),
		logger:    slog.Default(),
	}, nil
}

// Ingest rebuilds the corpus from the given page texts. The write lock is
// held for the whole run, so queries never observe a half-built generation.
// A failed embedding skips that chunk and the run continues; cancellation
// stops the run but leaves only whole chunk/vector pairs committed.
func (e *Engine) Ingest(ctx context.Context, pages []string, opts IngestOptions) (IngestReport, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if opts.ChunkSize == 0 {
		opts.ChunkSize = chunker.DefaultChunkSize
	}

	// Validate before touching shared state.
	splitter, err := chunker.NewSplitter(opts.ChunkSize, opts.Overlap)
	if err != nil {
		return IngestReport{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Clear index and corpus together; a failure here leaves the previous
	// generation in place rather than one store cleared and the other not.
	if err := e.index.Reset(ctx); err != nil {
		return IngestReport{}, fmt.Errorf("failed to reset index: %w", err)
	}
	e.corpus.Clear()
	e.generation++

	report := IngestReport{Generation: e.generation}

	for pageNum, pageText := range pages {
		report.PagesProcessed++

		chunks := splitter.Split(pageText)
		for i, text := range chunks {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			default:
			}

			if text == "" {
				continue
			}

			vec, err := e.embedder.Embed(ctx, text)
			if err != nil {
				if ctx.Err() != nil {
					return report, ctx.Err()
				}
				report.ChunksFailed++
				logger.WarnContext(ctx, "skipping chunk, embedding failed",
					"page", pageNum+1, "chunk", i+1, "error", err)
				continue
			}

			// Insert under the ordinal the corpus is about to assign;
			// inserting first keeps the pair atomic when the insert fails.
			ordinal := e.corpus.Len()
			if err := e.index.Insert(ctx, ordinal, vec); err != nil {
				report.ChunksFailed++
				logger.WarnContext(ctx, "skipping chunk, index insert failed",
					"page", pageNum+1, "chunk", i+1, "error", err)
				continue
			}
			e.corpus.Append(text, pageNum+1, i+1)
			report.ChunksIndexed++
		}
	}

	logger.InfoContext(ctx, "ingestion completed",
		"generation", report.Generation,
		"pages", report.PagesProcessed,
		"chunks_indexed", report.ChunksIndexed,
		"chunks_failed", report.ChunksFailed,
	)
	return report, nil
}

// Retrieve answers a query against the current generation. The read lock is
// held for the full query, so concurrent ingestion cannot swap the corpus
// out from under the search.
func (e *Engine) Retrieve(ctx context.Context, question string, topK int) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if topK <= 0 {
		topK = DefaultTopK
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.corpus.Len() == 0 {
		return Result{}, service.ErrEmptyCorpus
	}

	vec, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed query: %w", err)
	}

	hits, err := e.index.Search(ctx, vec, topK)
	if err != nil {
		return Result{}, fmt.Errorf("failed to search index: %w", err)
	}

	texts := make([]string, 0, len(hits))
	sources := make([]string, 0, len(hits))
	for _, hit := range hits {
		c, ok := e.corpus.Get(hit.Ordinal)
		if !ok {
			// Should not happen while the read lock is held; drop the hit
			// rather than fail the whole query.
			logger.WarnContext(ctx, "search hit does not resolve to a chunk", "ordinal", hit.Ordinal)
			continue
		}
		texts = append(texts, c.Text)
		sources = append(sources, c.Label())
	}

	logger.InfoContext(ctx, "retrieval completed",
		"generation", e.generation, "top_k", topK, "hits", len(texts))

	return Result{
		Context: strings.Join(texts, contextSeparator),
		Sources: sources,
	}, nil
}

// Ask retrieves context for the question and asks the generator for an
// answer. The generator call happens outside the corpus lock; it only needs
// the already-copied context text.
func (e *Engine) Ask(ctx context.Context, question string, topK int) (Answer, error) {
	result, err := e.Retrieve(ctx, question, topK)
	if err != nil {
		return Answer{}, err
	}

	response, err := e.generator.Generate(ctx, result.Context, question)
	if err != nil {
		return Answer{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	return Answer{
		Response: response,
		Sources:  result.Sources,
	}, nil
}
