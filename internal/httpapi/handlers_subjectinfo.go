package httpapi

import (
	"net/http"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/models"
)

func (s *Server) handleSubjectInfoGet(w http.ResponseWriter, r *http.Request) {
	path := s.subjectPath(r)
	if !path.Resolved() {
		s.respondError(w, r, common.ErrPathUnresolved)
		return
	}
	info, err := s.repos.SubjectInfo(s.db).Get(r.Context(), path)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, info)
}

// handleSubjectInfoSave merges the submitted card into what is stored:
// empty fields keep their current value.
func (s *Server) handleSubjectInfoSave(w http.ResponseWriter, r *http.Request) {
	path := s.subjectPath(r)
	if !path.Resolved() {
		s.respondError(w, r, common.ErrPathUnresolved)
		return
	}
	var info models.SubjectInfo
	if err := decodeJSON(r, &info); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.repos.SubjectInfo(s.db).Save(r.Context(), path, info); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}
