// Package api exposes editor sessions over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/chapterdesk/internal/config"
	"github.com/dgallion1/chapterdesk/internal/pathstore"
	"github.com/dgallion1/chapterdesk/internal/session"
)

// Server is the HTTP API server for chapterdesk.
type Server struct {
	router   chi.Router
	sessions *session.Registry
	ps       *pathstore.Client // nil when publishing to the log
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(sessions *session.Registry, ps *pathstore.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		sessions: sessions,
		ps:       ps,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.ChapterdeskAPIKey, s.log))

		r.Post("/api/documents", s.handleOpen)
		r.Route("/api/documents/{docID}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/title", s.handleSetTitle)
			r.Put("/label", s.handleSetLabel)
			r.Put("/content", s.handleEdit)

			r.Post("/chapters", s.handleAddChapter)
			r.Post("/chapters/{chapterID}/activate", s.handleActivate)
			r.Put("/chapters/{chapterID}/title", s.handleRenameChapter)
			r.Delete("/chapters/{chapterID}", s.handleDeleteChapter)

			r.Post("/markers", s.handleInsertMarker)
			r.Post("/split", s.handleSplit)
			r.Post("/publish", s.handlePublish)

			r.Post("/view/dark-mode", s.handleToggleDarkMode)
			r.Post("/view/title-editing", s.handleTitleEditing(true))
			r.Delete("/view/title-editing", s.handleTitleEditing(false))
			r.Post("/chapters/{chapterID}/rename", s.handleBeginRename)
			r.Put("/rename", s.handleCommitRename)
			r.Delete("/rename", s.handleCancelRename)

			r.Post("/back", s.handleBack)
			r.Post("/confirm", s.handleConfirm)
			r.Post("/cancel", s.handleCancel)
		})

		r.Get("/api/labels", s.handleLabels)
		r.Get("/api/materials/{slug}", s.handleListMaterials)
		r.Get("/api/materials/{slug}/{materialID}", s.handleGetMaterial)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}
