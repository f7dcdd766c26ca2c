package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"pdfchat/internal/handlers"
	"pdfchat/internal/retrieval"
	"pdfchat/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine         retrieval.Service
	Documents      storage.DocumentStore
	DB             *sql.DB
	UploadDir      string
	IngestDefaults retrieval.IngestOptions
	IndexHTML      string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	uploadHandler := handlers.NewUploadHandler(deps.Engine, deps.Documents, deps.UploadDir, deps.IngestDefaults)
	chatHandler := handlers.NewChatHandler(deps.Engine)
	documentsHandler := handlers.NewDocumentsHandler(deps.Documents)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/upload", uploadHandler)
		r.Method(http.MethodGet, "/chat", chatHandler)
		r.Method(http.MethodGet, "/documents", documentsHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	// Serve the single-page frontend at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
