package llm

import "fmt"

// ProviderError reports a failed or malformed response from the embedding or
// chat completion provider. It carries the upstream status and message so
// callers never have to fall back to a silent zero vector or empty answer.
type ProviderError struct {
	Op         string // "embed" or "generate"
	StatusCode int    // upstream HTTP status, 0 when the call never completed
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: provider returned status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
