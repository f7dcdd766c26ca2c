package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pdfchat/internal/llm"
	"pdfchat/internal/retrieval"
	"pdfchat/internal/service"
)

func TestChatHandler_Success(t *testing.T) {
	engine := &stubEngine{
		answer: retrieval.Answer{
			Response: "The document is about retrieval.",
			Sources:  []string{"Page 1, Chunk 1", "Page 2, Chunk 3"},
		},
	}
	handler := NewChatHandler(engine)

	req := httptest.NewRequest(http.MethodGet, "/api/chat?query=what+is+this+about", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Response != "The document is about retrieval." {
		t.Errorf("response = %q", resp.Response)
	}
	if len(resp.Sources) != 2 || resp.Sources[0] != "Page 1, Chunk 1" {
		t.Errorf("sources = %v", resp.Sources)
	}

	if engine.askQuestion != "what is this about" {
		t.Errorf("engine received question %q", engine.askQuestion)
	}
	if engine.askTopK != 0 {
		t.Errorf("engine received top_k %d, want 0 (engine default)", engine.askTopK)
	}
}

func TestChatHandler_TopK(t *testing.T) {
	tests := []struct {
		name       string
		topK       string
		wantStatus int
		wantTopK   int
	}{
		{name: "explicit", topK: "5", wantStatus: http.StatusOK, wantTopK: 5},
		{name: "clamped to max", topK: "100", wantStatus: http.StatusOK, wantTopK: maxTopK},
		{name: "zero rejected", topK: "0", wantStatus: http.StatusBadRequest},
		{name: "negative rejected", topK: "-2", wantStatus: http.StatusBadRequest},
		{name: "non-numeric rejected", topK: "three", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &stubEngine{}
			handler := NewChatHandler(engine)

			req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/chat?query=q&top_k=%s", tt.topK), nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus == http.StatusOK && engine.askTopK != tt.wantTopK {
				t.Errorf("engine received top_k %d, want %d", engine.askTopK, tt.wantTopK)
			}
		})
	}
}

func TestChatHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		askErr     error
		wantStatus int
	}{
		{
			name:       "missing query",
			target:     "/api/chat",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "blank query",
			target:     "/api/chat?query=%20%20",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no document ingested",
			target:     "/api/chat?query=q",
			askErr:     service.ErrEmptyCorpus,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "embedding provider down",
			target:     "/api/chat?query=q",
			askErr:     fmt.Errorf("failed to embed query: %w", &llm.ProviderError{Op: "embed", StatusCode: 503, Message: "unavailable"}),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "generator provider down",
			target:     "/api/chat?query=q",
			askErr:     fmt.Errorf("failed to generate answer: %w", &llm.ProviderError{Op: "generate", StatusCode: 429, Message: "rate limited"}),
			wantStatus: http.StatusBadGateway,
		},
		{
			name:       "unexpected failure",
			target:     "/api/chat?query=q",
			askErr:     fmt.Errorf("index corrupted"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewChatHandler(&stubEngine{askErr: tt.askErr})

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error == "" {
				t.Error("error response missing message")
			}
		})
	}
}

func TestChatHandler_MethodNotAllowed(t *testing.T) {
	handler := NewChatHandler(&stubEngine{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat?query=q", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
