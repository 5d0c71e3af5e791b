package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studylab/studyvault/internal/models"
)

func (s *Server) handleBackupsList(w http.ResponseWriter, r *http.Request) {
	list, err := s.backups(r).List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.Backup{}
	}
	s.respondJSON(w, http.StatusOK, list)
}

func (s *Server) handleBackupsCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
		Date  string `json:"date"`
	}
	if err := decodeJSON(r, &req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	b, err := s.backups(r).Create(r.Context(), req.Label, req.Date)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, b)
}

func (s *Server) handleBackupsRestore(w http.ResponseWriter, r *http.Request) {
	b, err := s.backups(r).Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"id":            b.ID,
		"restoredNotes": len(b.Notes),
	})
}

func (s *Server) handleBackupsRelabel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Label string `json:"label"`
	}
	if err := decodeJSON(r, &req); err != nil || req.Label == "" {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "label is required"})
		return
	}
	if err := s.backups(r).Relabel(r.Context(), chi.URLParam(r, "id"), req.Label); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleBackupsDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.backups(r).Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
