package handlers

import (
	"context"

	"pdfchat/internal/retrieval"
)

// stubEngine is a hand-rolled retrieval.Service for handler tests. It records
// the arguments of the last call and returns canned results.
type stubEngine struct {
	ingestPages  []string
	ingestOpts   retrieval.IngestOptions
	ingestReport retrieval.IngestReport
	ingestErr    error

	askQuestion string
	askTopK     int
	answer      retrieval.Answer
	askErr      error
}

func (s *stubEngine) Ingest(_ context.Context, pages []string, opts retrieval.IngestOptions) (retrieval.IngestReport, error) {
	s.ingestPages = pages
	s.ingestOpts = opts
	return s.ingestReport, s.ingestErr
}

func (s *stubEngine) Retrieve(_ context.Context, question string, topK int) (retrieval.Result, error) {
	s.askQuestion = question
	s.askTopK = topK
	return retrieval.Result{}, s.askErr
}

func (s *stubEngine) Ask(_ context.Context, question string, topK int) (retrieval.Answer, error) {
	s.askQuestion = question
	s.askTopK = topK
	return s.answer, s.askErr
}
