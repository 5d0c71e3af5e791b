package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// requestTerm reads the "sem" query parameter the way subject pages carry
// it, defaulting to term 1.
func requestTerm(r *http.Request) int {
	return tenant.ResolveTerm(tenant.Page{URL: r.URL.String()})
}

func (s *Server) handleCatalogList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.catalog(r).List(r.Context(), requestTerm(r))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*models.CatalogEntry{}
	}
	s.respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCatalogCreate(w http.ResponseWriter, r *http.Request) {
	var e models.CatalogEntry
	if err := decodeJSON(r, &e); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	id, err := s.catalog(r).Create(r.Context(), requestTerm(r), &e)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleCatalogSeed populates an empty term in one transaction. A term that
// already has entries answers 409 and stays as it was.
func (s *Server) handleCatalogSeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Entries []*models.CatalogEntry `json:"entries"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	term := requestTerm(r)
	if err := s.catalog(r).Seed(r.Context(), term, req.Entries); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]any{"term": term, "seeded": len(req.Entries)})
}

func (s *Server) handleCatalogUpdate(w http.ResponseWriter, r *http.Request) {
	var patch models.CatalogPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.catalog(r).Update(r.Context(), requestTerm(r), chi.URLParam(r, "id"), patch); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleCatalogDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog(r).Delete(r.Context(), requestTerm(r), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
