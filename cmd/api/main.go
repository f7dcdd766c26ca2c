package main

import (
	_ "embed"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"pdfchat/internal/config"
	"pdfchat/internal/http"
	"pdfchat/internal/llm"
	"pdfchat/internal/retrieval"
	"pdfchat/internal/storage"
	"pdfchat/internal/vectorstore"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API lets you upload a document (PDF, markdown, or plain text) and ask
// questions about it. Uploaded documents are split into overlapping chunks,
// embedded, and indexed for nearest-neighbor retrieval; answers are generated
// from the retrieved context.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: PDF Chat API
//   description: |
//     Upload a document and chat with it. Each upload replaces the previous
//     document; queries retrieve the most relevant chunks and generate an
//     answer from them.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// produces:
//   - application/json

//go:embed index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	documentRepo := storage.NewDocumentRepo(db)

	// Select the vector index backend
	var index vectorstore.Index
	switch cfg.VectorBackend {
	case config.BackendQdrant:
		qdrantIndex, err := vectorstore.NewQdrantIndex(cfg.QdrantURL, cfg.QdrantCollection, cfg.EmbeddingDim)
		if err != nil {
			log.Fatalf("Failed to create Qdrant index: %v", err)
		}
		index = qdrantIndex
		slog.Info("Using Qdrant vector index", "url", cfg.QdrantURL, "collection", cfg.QdrantCollection)
	default:
		flatIndex, err := vectorstore.NewFlatIndex(cfg.EmbeddingDim)
		if err != nil {
			log.Fatalf("Failed to create flat index: %v", err)
		}
		index = flatIndex
		slog.Info("Using in-memory flat vector index", "dimension", cfg.EmbeddingDim)
	}

	// Create external service clients
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)

	// Create retrieval engine
	engine, err := retrieval.NewEngine(embedder, index, llmClient)
	if err != nil {
		log.Fatalf("Failed to create retrieval engine: %v", err)
	}
	slog.Info("Retrieval engine initialized",
		"embedding_model", cfg.EmbeddingModel, "dimension", cfg.EmbeddingDim)

	// Create router with dependencies
	deps := &http.Deps{
		Engine:    engine,
		Documents: documentRepo,
		DB:        db,
		UploadDir: cfg.UploadDir,
		IngestDefaults: retrieval.IngestOptions{
			ChunkSize: cfg.ChunkSize,
			Overlap:   cfg.ChunkOverlap,
		},
		IndexHTML: indexHTML,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
