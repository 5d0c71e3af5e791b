package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studylab/studyvault/internal/models"
)

func (s *Server) handleNotesList(w http.ResponseWriter, r *http.Request) {
	notes, err := s.notes(r).List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	s.respondJSON(w, http.StatusOK, notes)
}

func (s *Server) handleNotesCreate(w http.ResponseWriter, r *http.Request) {
	var n models.Note
	if err := decodeJSON(r, &n); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	id, err := s.notes(r).Create(r.Context(), &n)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleNotesUpdate(w http.ResponseWriter, r *http.Request) {
	var patch models.NotePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.notes(r).Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleNotesDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.notes(r).Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
