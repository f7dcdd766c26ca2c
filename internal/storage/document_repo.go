package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks pdfchat/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// DocumentStore defines the interface for document registry operations.
type DocumentStore interface {
	// Insert records a successfully ingested document. If the record has no
	// ID, a new UUID is generated and written back to it.
	Insert(ctx context.Context, doc *DocumentRecord) error
	// GetByID gets a document by its ID.
	// Returns nil and ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*DocumentRecord, error)
	// List returns all recorded documents, newest first.
	List(ctx context.Context) ([]*DocumentRecord, error)
}

// DocumentRepo provides methods for document registry operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert records a successfully ingested document.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, filename, pages, chunks, chunk_size, overlap, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		doc.ID, doc.Filename, doc.Pages, doc.Chunks, doc.ChunkSize, doc.Overlap,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

// GetByID gets a document by its ID.
// Returns nil and ErrNotFound if not found.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*DocumentRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, filename, pages, chunks, chunk_size, overlap, uploaded_at FROM documents WHERE id = ?",
		id,
	)

	doc, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	return doc, nil
}

// List returns all recorded documents, newest first.
func (r *DocumentRepo) List(ctx context.Context) ([]*DocumentRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, filename, pages, chunks, chunk_size, overlap, uploaded_at FROM documents ORDER BY uploaded_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []*DocumentRecord
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*DocumentRecord, error) {
	var doc DocumentRecord
	var uploadedAtStr string

	err := s.Scan(&doc.ID, &doc.Filename, &doc.Pages, &doc.Chunks, &doc.ChunkSize, &doc.Overlap, &uploadedAtStr)
	if err != nil {
		return nil, err
	}

	// Parse uploaded_at DATETIME string
	doc.UploadedAt, err = time.Parse("2006-01-02 15:04:05", uploadedAtStr)
	if err != nil {
		// Try alternative format (SQLite might use different format)
		doc.UploadedAt, err = time.Parse(time.RFC3339, uploadedAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse uploaded_at timestamp: %w", err)
		}
	}

	return &doc, nil
}
