package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/dgallion1/chapterdesk/internal/publish"
)

// handleListMaterials lists published materials stored under a slug.
func (s *Server) handleListMaterials(w http.ResponseWriter, r *http.Request) {
	if s.ps == nil {
		jsonError(w, "material store not configured", http.StatusServiceUnavailable)
		return
	}
	sl := chi.URLParam(r, "slug")
	if !slug.IsSlug(sl) {
		jsonError(w, "invalid slug", http.StatusBadRequest)
		return
	}

	nodes, err := s.ps.ListChildren(r.Context(), "materials/"+sl, 200)
	if err != nil {
		jsonError(w, "failed to list materials: "+err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"materials": nodes})
}

// handleGetMaterial returns one published material.
func (s *Server) handleGetMaterial(w http.ResponseWriter, r *http.Request) {
	if s.ps == nil {
		jsonError(w, "material store not configured", http.StatusServiceUnavailable)
		return
	}
	m := publish.Material{Slug: chi.URLParam(r, "slug"), ID: chi.URLParam(r, "materialID")}
	if !slug.IsSlug(m.Slug) {
		jsonError(w, "invalid slug", http.StatusBadRequest)
		return
	}
	if _, err := uuid.Parse(m.ID); err != nil {
		jsonError(w, "invalid material id", http.StatusBadRequest)
		return
	}

	node, err := s.ps.GetNode(r.Context(), publish.MaterialKey(m))
	if err != nil {
		jsonError(w, "failed to read material: "+err.Error(), http.StatusBadGateway)
		return
	}
	if node == nil {
		jsonError(w, "material not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(node.Value)
}
