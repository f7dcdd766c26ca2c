package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"pdfchat/internal/contextutil"
	"pdfchat/internal/extractor"
	"pdfchat/internal/retrieval"
	"pdfchat/internal/service"
	"pdfchat/internal/storage"
)

// maxUploadBytes bounds the multipart form held in memory before spilling
// to temporary files.
const maxUploadBytes = 32 << 20

// UploadHandler handles document uploads. Each upload replaces whatever
// corpus the engine was serving before.
type UploadHandler struct {
	engine    retrieval.Service
	documents storage.DocumentStore
	uploadDir string
	defaults  retrieval.IngestOptions
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(engine retrieval.Service, documents storage.DocumentStore, uploadDir string, defaults retrieval.IngestOptions) *UploadHandler {
	return &UploadHandler{
		engine:    engine,
		documents: documents,
		uploadDir: uploadDir,
		defaults:  defaults,
	}
}

// UploadResponse represents the response to a successful upload.
//
// swagger:model UploadResponse
type UploadResponse struct {
	Message         string `json:"message"`
	DocumentID      string `json:"document_id"`
	Filename        string `json:"filename"`
	PagesProcessed  int    `json:"pages_processed"`
	ChunksProcessed int    `json:"chunks_processed"`
	ChunksFailed    int    `json:"chunks_failed,omitempty"`
}

// ServeHTTP accepts a multipart upload, extracts the document's page text,
// and rebuilds the retrieval corpus from it.
//
// swagger:route POST /api/upload uploadDocument
//
// # Upload a document
//
// Accepts a PDF, markdown, or plain-text file in the "file" form field and
// ingests it, replacing the previously ingested document. Optional form
// fields chunk_size and overlap tune the splitter.
//
// ---
// consumes:
// - multipart/form-data
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Document ingested
//	  schema:
//	    "$ref": "#/definitions/UploadResponse"
//	'400':
//	  description: Missing file, unsupported format, or invalid chunking parameters
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'500':
//	  description: Internal server error
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "missing file field", "error", err)
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	filename := filepath.Base(header.Filename)

	// Reject unsupported formats before writing anything to disk.
	ext, err := extractor.ForFile(filename)
	if err != nil {
		logger.WarnContext(ctx, "unsupported upload format", "filename", filename)
		writeError(w, statusForError(err), fmt.Sprintf("Unsupported file format: %s", filepath.Ext(filename)))
		return
	}

	opts, err := h.ingestOptions(r)
	if err != nil {
		logger.WarnContext(ctx, "invalid chunking parameters", "error", err)
		writeErrorDetails(w, statusForError(err), "Invalid chunking parameters", err.Error())
		return
	}

	docID := uuid.New().String()
	savedPath, err := h.saveUpload(file, docID+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		logger.ErrorContext(ctx, "failed to save upload", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save uploaded file")
		return
	}

	pages, err := ext.Extract(savedPath)
	if err != nil {
		logger.ErrorContext(ctx, "failed to extract document text", "filename", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to extract document text")
		return
	}

	report, err := h.engine.Ingest(ctx, pages, opts)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "filename", filename, "error", err)
		writeErrorDetails(w, statusForError(err), "Failed to ingest document", err.Error())
		return
	}

	record := &storage.DocumentRecord{
		ID:        docID,
		Filename:  filename,
		Pages:     report.PagesProcessed,
		Chunks:    report.ChunksIndexed,
		ChunkSize: opts.ChunkSize,
		Overlap:   opts.Overlap,
	}
	if err := h.documents.Insert(ctx, record); err != nil {
		// The corpus is already live; a registry failure should not undo a
		// successful ingestion.
		logger.ErrorContext(ctx, "failed to record document", "document_id", docID, "error", err)
	}

	logger.InfoContext(ctx, "document ingested",
		"document_id", docID,
		"filename", filename,
		"pages", report.PagesProcessed,
		"chunks", report.ChunksIndexed,
		"chunks_failed", report.ChunksFailed,
	)

	writeJSON(w, http.StatusOK, UploadResponse{
		Message:         "Document uploaded and processed successfully",
		DocumentID:      docID,
		Filename:        filename,
		PagesProcessed:  report.PagesProcessed,
		ChunksProcessed: report.ChunksIndexed,
		ChunksFailed:    report.ChunksFailed,
	})
}

// ingestOptions reads the optional chunk_size and overlap form fields,
// falling back to the configured defaults when a field is absent.
func (h *UploadHandler) ingestOptions(r *http.Request) (retrieval.IngestOptions, error) {
	opts := h.defaults

	chunkSize, err := formInt(r, "chunk_size", opts.ChunkSize)
	if err != nil {
		return retrieval.IngestOptions{}, err
	}
	overlap, err := formInt(r, "overlap", opts.Overlap)
	if err != nil {
		return retrieval.IngestOptions{}, err
	}

	opts.ChunkSize = chunkSize
	opts.Overlap = overlap
	return opts, nil
}

func (h *UploadHandler) saveUpload(file io.Reader, name string) (string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(h.uploadDir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		_ = dst.Close()
	}()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// formInt parses an optional integer form field.
func formInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", service.ErrInvalidInput, name)
	}
	return v, nil
}
