package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"pdfchat/internal/chunker"
	"pdfchat/internal/retrieval"
	"pdfchat/internal/storage"
	storage_mocks "pdfchat/internal/storage/mocks"
)

func multipartUpload(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("CreateFormFile() error = %v", err)
		}
		if _, err := io.WriteString(part, content); err != nil {
			t.Fatalf("WriteString() error = %v", err)
		}
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("WriteField(%q) error = %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestUploadHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := &stubEngine{
		ingestReport: retrieval.IngestReport{PagesProcessed: 1, ChunksIndexed: 2},
	}

	var recorded *storage.DocumentRecord
	mockStore := storage_mocks.NewMockDocumentStore(ctrl)
	mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, doc *storage.DocumentRecord) error {
			recorded = doc
			return nil
		})

	uploadDir := t.TempDir()
	handler := NewUploadHandler(engine, mockStore, uploadDir, retrieval.IngestOptions{ChunkSize: 1000, Overlap: 200})

	body, contentType := multipartUpload(t, "notes.txt", "some document text", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp UploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DocumentID == "" {
		t.Error("response missing document_id")
	}
	if resp.Filename != "notes.txt" {
		t.Errorf("filename = %q, want notes.txt", resp.Filename)
	}
	if resp.PagesProcessed != 1 || resp.ChunksProcessed != 2 {
		t.Errorf("counts = %d pages / %d chunks, want 1/2", resp.PagesProcessed, resp.ChunksProcessed)
	}

	if len(engine.ingestPages) != 1 || engine.ingestPages[0] != "some document text" {
		t.Errorf("engine received pages %v", engine.ingestPages)
	}
	if engine.ingestOpts.ChunkSize != 1000 || engine.ingestOpts.Overlap != 200 {
		t.Errorf("engine received opts %+v, want defaults 1000/200", engine.ingestOpts)
	}

	if recorded == nil {
		t.Fatal("document was not recorded")
	}
	if recorded.Filename != "notes.txt" || recorded.Chunks != 2 {
		t.Errorf("recorded document = %+v", recorded)
	}

	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || filepath.Ext(entries[0].Name()) != ".txt" {
		t.Errorf("upload dir contents = %v, want one .txt file", entries)
	}
}

func TestUploadHandler_ChunkingOverrides(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine := &stubEngine{}
	mockStore := storage_mocks.NewMockDocumentStore(ctrl)
	mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	handler := NewUploadHandler(engine, mockStore, t.TempDir(), retrieval.IngestOptions{ChunkSize: 1000, Overlap: 200})

	body, contentType := multipartUpload(t, "notes.txt", "text", map[string]string{
		"chunk_size": "500",
		"overlap":    "50",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if engine.ingestOpts.ChunkSize != 500 || engine.ingestOpts.Overlap != 50 {
		t.Errorf("engine received opts %+v, want 500/50", engine.ingestOpts)
	}
}

func TestUploadHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		filename   string
		fields     map[string]string
		ingestErr  error
		wantStatus int
	}{
		{
			name:       "missing file",
			filename:   "",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported format",
			filename:   "report.docx",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-numeric chunk_size",
			filename:   "notes.txt",
			fields:     map[string]string{"chunk_size": "big"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "overlap not smaller than chunk size",
			filename:   "notes.txt",
			fields:     map[string]string{"chunk_size": "100", "overlap": "100"},
			ingestErr:  chunker.ErrBadConfig,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "ingestion failure",
			filename:   "notes.txt",
			ingestErr:  errors.New("index reset failed"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			engine := &stubEngine{ingestErr: tt.ingestErr}
			mockStore := storage_mocks.NewMockDocumentStore(ctrl)

			handler := NewUploadHandler(engine, mockStore, t.TempDir(), retrieval.IngestOptions{ChunkSize: 1000, Overlap: 200})

			body, contentType := multipartUpload(t, tt.filename, "text", tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
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

func TestUploadHandler_MethodNotAllowed(t *testing.T) {
	handler := NewUploadHandler(&stubEngine{}, nil, t.TempDir(), retrieval.IngestOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
