package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks pdfchat/internal/llm Embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Embedder turns a text into a fixed-dimension vector. Every successful
// result has exactly Dimension() components.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// EmbeddingsClient is an Embedder backed by an OpenAI-compatible
// /v1/embeddings endpoint.
type EmbeddingsClient struct {
	BaseURL string
	APIKey  string
	Model   string
	dim     int
	client  *http.Client
}

// NewEmbeddingsClient creates an embeddings client. dim is the vector size
// the provider is expected to return; any other size is reported as a
// provider error.
func NewEmbeddingsClient(baseURL, apiKey, model string, dim int) *EmbeddingsClient {
	return &EmbeddingsClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		dim:     dim,
		client:  http.DefaultClient,
	}
}

// Dimension returns the expected vector size.
func (c *EmbeddingsClient) Dimension() int { return c.dim }

// embeddingsRequest is the request payload for the embeddings API.
type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

// embeddingsResponse is the response from the embeddings API.
type embeddingsResponse struct {
	Data []struct {
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed generates an embedding for one text. Provider failures and
// malformed responses (wrong count, wrong dimension) surface as
// *ProviderError; no retries are attempted at this layer.
func (c *EmbeddingsClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, &ProviderError{Op: "embed", Message: "empty input text"}
	}

	url := fmt.Sprintf("%s/v1/embeddings", c.BaseURL)

	body, err := json.Marshal(embeddingsRequest{
		Model: c.Model,
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Op: "embed", Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &ProviderError{Op: "embed", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var parsed embeddingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &ProviderError{Op: "embed", StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if len(parsed.Data) != 1 {
		return nil, &ProviderError{Op: "embed", StatusCode: resp.StatusCode, Message: fmt.Sprintf("expected 1 embedding, got %d", len(parsed.Data))}
	}
	if len(parsed.Data[0].Embedding) != c.dim {
		return nil, &ProviderError{Op: "embed", StatusCode: resp.StatusCode, Message: fmt.Sprintf("embedding has size %d, expected %d", len(parsed.Data[0].Embedding), c.dim)}
	}

	vec := make([]float32, c.dim)
	for i, v := range parsed.Data[0].Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
