package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_generator.go -package=mocks pdfchat/internal/llm Generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const systemPrompt = "You are a helpful assistant. Answer questions based on the provided document context."

// Generator produces a natural-language answer from retrieved context and a
// question.
type Generator interface {
	Generate(ctx context.Context, contextText, question string) (string, error)
}

// Client is a Generator backed by an OpenAI-compatible /v1/chat/completions
// endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string
	client  *http.Client
}

// NewClient creates a new chat completion client.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
		client:  http.DefaultClient,
	}
}

// chatMessage is a single message in a chat conversation.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request payload for chat completions.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatResponse is the response from the chat completions API.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// Generate asks the model to answer question from contextText. Provider
// failures surface as *ProviderError with the upstream status and body.
func (c *Client) Generate(ctx context.Context, contextText, question string) (string, error) {
	url := fmt.Sprintf("%s/v1/chat/completions", c.BaseURL)

	userMessage := fmt.Sprintf("Use this document context to answer the question:\n\n%s\n\nQuestion: %s", contextText, question)

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &ProviderError{Op: "generate", Message: err.Error()}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", &ProviderError{Op: "generate", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ProviderError{Op: "generate", StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to decode response: %v", err)}
	}

	if len(parsed.Choices) == 0 {
		return "", &ProviderError{Op: "generate", StatusCode: resp.StatusCode, Message: "no choices returned"}
	}

	return parsed.Choices[0].Message.Content, nil
}
