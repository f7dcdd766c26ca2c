package handlers

import (
	"net/http"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/storage"
)

// DocumentsHandler lists the upload history.
type DocumentsHandler struct {
	documents storage.DocumentStore
}

// NewDocumentsHandler creates a new DocumentsHandler.
func NewDocumentsHandler(documents storage.DocumentStore) *DocumentsHandler {
	return &DocumentsHandler{documents: documents}
}

// DocumentsResponse represents the list of recorded uploads.
//
// swagger:model DocumentsResponse
type DocumentsResponse struct {
	Documents []*storage.DocumentRecord `json:"documents"`
}

// ServeHTTP lists all recorded document uploads, newest first.
//
// swagger:route GET /api/documents listDocuments
//
// # List uploaded documents
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Upload history
//	  schema:
//	    "$ref": "#/definitions/DocumentsResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *DocumentsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	docs, err := h.documents.List(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list documents", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list documents")
		return
	}
	if docs == nil {
		docs = []*storage.DocumentRecord{}
	}

	writeJSON(w, http.StatusOK, DocumentsResponse{Documents: docs})
}
