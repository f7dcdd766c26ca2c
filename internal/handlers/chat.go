package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/retrieval"
)

// maxTopK caps the number of chunks a single query may retrieve.
const maxTopK = 20

// ChatHandler handles question-answering requests against the ingested
// document.
type ChatHandler struct {
	engine retrieval.Service
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(engine retrieval.Service) *ChatHandler {
	return &ChatHandler{engine: engine}
}

// ChatResponse represents the response to a chat query.
// This mirrors retrieval.Answer but is defined here for HTTP layer separation.
//
// swagger:model ChatResponse
type ChatResponse struct {
	// The generated answer
	Response string `json:"response"`

	// Provenance labels of the chunks used as context, nearest first
	Sources []string `json:"sources"`
}

// ServeHTTP answers a question using the currently ingested document.
//
// swagger:route GET /api/chat chatQuery
//
// # Ask a question about the uploaded document
//
// Retrieves the chunks nearest to the query, assembles them into a context,
// and generates an answer. The optional top_k parameter controls how many
// chunks are retrieved (default 3).
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Generated answer with source labels
//	  schema:
//	    "$ref": "#/definitions/ChatResponse"
//	'400':
//	  description: Missing query or invalid top_k
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'409':
//	  description: No document has been ingested yet
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'502':
//	  description: External service error (LLM or embedding service)
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	if query == "" {
		logger.WarnContext(ctx, "empty query in request")
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	topK := 0
	if raw := r.URL.Query().Get("top_k"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			logger.WarnContext(ctx, "invalid top_k", "top_k", raw)
			writeError(w, http.StatusBadRequest, "top_k must be a positive integer")
			return
		}
		topK = v
	}
	if topK > maxTopK {
		topK = maxTopK
	}

	answer, err := h.engine.Ask(ctx, query, topK)
	if err != nil {
		logger.ErrorContext(ctx, "chat query failed", "error", err)
		switch status := statusForError(err); status {
		case http.StatusConflict:
			writeError(w, status, "No document has been ingested yet")
		case http.StatusBadGateway:
			writeError(w, status, "External service error")
		default:
			writeError(w, status, "Failed to process chat query")
		}
		return
	}

	logger.InfoContext(ctx, "chat query answered", "sources", len(answer.Sources))

	writeJSON(w, http.StatusOK, ChatResponse{
		Response: answer.Response,
		Sources:  answer.Sources,
	})
}
