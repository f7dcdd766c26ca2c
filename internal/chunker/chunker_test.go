package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestNewSplitter_Validation(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{name: "defaults", chunkSize: 1000, overlap: 200, wantErr: false},
		{name: "zero overlap", chunkSize: 100, overlap: 0, wantErr: false},
		{name: "zero chunk size", chunkSize: 0, overlap: 0, wantErr: true},
		{name: "negative chunk size", chunkSize: -5, overlap: 0, wantErr: true},
		{name: "negative overlap", chunkSize: 100, overlap: -1, wantErr: true},
		{name: "overlap equals chunk size", chunkSize: 100, overlap: 100, wantErr: true},
		{name: "overlap exceeds chunk size", chunkSize: 100, overlap: 150, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSplitter(tt.chunkSize, tt.overlap)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewSplitter() expected error, got nil")
				}
				if !errors.Is(err, ErrBadConfig) {
					t.Errorf("NewSplitter() error = %v, want ErrBadConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewSplitter() unexpected error: %v", err)
			}
		})
	}
}

func TestSplitter_Split_Empty(t *testing.T) {
	s, err := NewSplitter(1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	if got := s.Split(""); len(got) != 0 {
		t.Errorf("Split(\"\") = %d chunks, want 0", len(got))
	}
}

func TestSplitter_Split_ShortText(t *testing.T) {
	s, err := NewSplitter(1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	chunks := s.Split("A short paragraph.")
	if len(chunks) != 1 {
		t.Fatalf("Split() = %d chunks, want 1", len(chunks))
	}
	if chunks[0] != "A short paragraph." {
		t.Errorf("Split() chunk = %q", chunks[0])
	}
}

func TestSplitter_Split_BoundedSize(t *testing.T) {
	s, err := NewSplitter(1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 200)
	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("Split() = %d chunks, want several", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 1000 {
			t.Errorf("chunk[%d] length = %d, exceeds chunk size 1000", i, len(c))
		}
		if c == "" {
			t.Errorf("chunk[%d] is empty", i)
		}
	}
}

func TestSplitter_Split_SentenceBoundary(t *testing.T) {
	s, err := NewSplitter(1000, 200)
	if err != nil {
		t.Fatal(err)
	}
	// Sentences land well inside the backtrack window, so every non-final
	// chunk should end on a period rather than mid-word.
	text := strings.Repeat("This sentence has a fixed length of fifty chars ok. ", 60)
	chunks := s.Split(text)
	for i, c := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(c, ".") {
			t.Errorf("chunk[%d] does not end at a sentence boundary: %q", i, c[len(c)-20:])
		}
	}
}

func TestSplitter_Split_Coverage(t *testing.T) {
	s, err := NewSplitter(500, 100)
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Repeat("abcdefghij", 300) // no natural breaks, hard splits
	chunks := s.Split(text)

	// Reassemble by dropping each chunk's overlap with the accumulated
	// prefix; the full text must be covered with no gaps.
	var rebuilt strings.Builder
	for _, c := range chunks {
		if rebuilt.Len() == 0 {
			rebuilt.WriteString(c)
			continue
		}
		overlap := 0
		max := len(c)
		if rebuilt.Len() < max {
			max = rebuilt.Len()
		}
		for n := max; n > 0; n-- {
			if strings.HasSuffix(rebuilt.String(), c[:n]) {
				overlap = n
				break
			}
		}
		rebuilt.WriteString(c[overlap:])
	}
	if rebuilt.String() != text {
		t.Errorf("chunks do not cover input: rebuilt %d bytes, want %d", rebuilt.Len(), len(text))
	}
}

func TestSplitter_Split_ForwardProgress(t *testing.T) {
	// Large overlap relative to chunk size must still terminate via the
	// half-window fallback.
	s, err := NewSplitter(100, 99)
	if err != nil {
		t.Fatal(err)
	}
	text := strings.Repeat("x", 500)
	chunks := s.Split(text)
	if len(chunks) == 0 {
		t.Fatal("Split() returned no chunks")
	}
	if len(chunks) > len(text) {
		t.Errorf("Split() = %d chunks, window not advancing", len(chunks))
	}
}

func TestSplitter_Split_TwoPageScenario(t *testing.T) {
	s, err := NewSplitter(1000, 200)
	if err != nil {
		t.Fatal(err)
	}

	page1 := strings.Repeat("a", 50)
	if got := s.Split(page1); len(got) != 1 {
		t.Errorf("50-char page: got %d chunks, want 1", len(got))
	}

	// 2500 chars of prose with regular sentence breaks: boundaries near
	// ~1000 and ~1800 after overlap, three chunks total.
	page2 := strings.Repeat("Fifty characters of prose ending in a period now. ", 50)
	got := s.Split(page2)
	if len(got) != 3 {
		t.Errorf("2500-char page: got %d chunks, want 3", len(got))
	}
}
