package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"pdfchat/internal/storage"
	storage_mocks "pdfchat/internal/storage/mocks"
)

func TestDocumentsHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storage_mocks.NewMockDocumentStore(ctrl)
	mockStore.EXPECT().List(gomock.Any()).Return([]*storage.DocumentRecord{
		{ID: "doc-2", Filename: "b.pdf", Pages: 3, Chunks: 9},
		{ID: "doc-1", Filename: "a.pdf", Pages: 1, Chunks: 2},
	}, nil)

	handler := NewDocumentsHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp DocumentsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Documents) != 2 {
		t.Fatalf("documents = %d, want 2", len(resp.Documents))
	}
	if resp.Documents[0].ID != "doc-2" || resp.Documents[1].ID != "doc-1" {
		t.Errorf("documents out of order: %v, %v", resp.Documents[0].ID, resp.Documents[1].ID)
	}
}

func TestDocumentsHandler_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storage_mocks.NewMockDocumentStore(ctrl)
	mockStore.EXPECT().List(gomock.Any()).Return(nil, nil)

	handler := NewDocumentsHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// An empty list must serialize as [], not null.
	if body := rec.Body.String(); !json.Valid([]byte(body)) || body == "" {
		t.Fatalf("invalid body %q", body)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["documents"]) == "null" {
		t.Error("documents serialized as null, want []")
	}
}

func TestDocumentsHandler_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storage_mocks.NewMockDocumentStore(ctrl)
	mockStore.EXPECT().List(gomock.Any()).Return(nil, errors.New("database locked"))

	handler := NewDocumentsHandler(mockStore)

	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
