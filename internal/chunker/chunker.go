package chunker

import (
	"fmt"
	"strings"
)

const (
	// DefaultChunkSize is the target chunk length in bytes.
	DefaultChunkSize = 1000
	// DefaultOverlap is the number of bytes shared between consecutive chunks.
	DefaultOverlap = 200
)

// Splitter splits raw text into overlapping windows of bounded size,
// preferring sentence boundaries near the target size.
type Splitter struct {
	chunkSize int
	overlap   int
}

// NewSplitter creates a Splitter. chunkSize must be positive and overlap
// must satisfy 0 <= overlap < chunkSize.
func NewSplitter(chunkSize, overlap int) (*Splitter, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk_size must be greater than 0, got %d", ErrBadConfig, chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("%w: overlap must satisfy 0 <= overlap < chunk_size, got overlap=%d chunk_size=%d", ErrBadConfig, overlap, chunkSize)
	}
	return &Splitter{chunkSize: chunkSize, overlap: overlap}, nil
}

// ChunkSize returns the configured target chunk size.
func (s *Splitter) ChunkSize() int { return s.chunkSize }

// Overlap returns the configured overlap.
func (s *Splitter) Overlap() int { return s.overlap }

// Split partitions text into chunks of at most chunkSize bytes. When a
// tentative boundary falls mid-text, it backtracks within the last
// min(100, chunkSize/4) bytes for a sentence break (". "), then a newline,
// and snaps the boundary to just after it. Consecutive chunks share up to
// overlap bytes. Empty input yields no chunks.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= s.chunkSize {
		return []string{strings.TrimSpace(text)}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + s.chunkSize
		if end > len(text) {
			end = len(text)
		}

		if end < len(text) {
			lookBack := s.chunkSize / 4
			if lookBack > 100 {
				lookBack = 100
			}
			window := text[end-lookBack : end]
			breakPoint := strings.LastIndex(window, ". ")
			if breakPoint == -1 {
				breakPoint = strings.LastIndex(window, "\n")
			}
			if breakPoint != -1 {
				end = end - lookBack + breakPoint + 1
			}
		}

		chunks = append(chunks, strings.TrimSpace(text[start:end]))

		// The final window already covers the remainder; re-emitting the
		// tail shifted by the overlap would only duplicate it.
		if end == len(text) {
			break
		}

		// Step back by the overlap; when that would not move forward
		// (overlap covers the whole remaining span), jump half a window
		// instead so the loop always terminates.
		if end-s.overlap > start {
			start = end - s.overlap
		} else {
			start += s.chunkSize / 2
		}
	}

	return chunks
}
