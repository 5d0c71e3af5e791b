package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/models"
)

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// respondError maps domain errors to HTTP statuses. Anything unrecognized
// is a 500 with the detail kept server-side.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrPathUnresolved):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrAlreadySeeded):
		status = http.StatusConflict
	case errors.Is(err, common.ErrUploadTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, models.ErrTitleRequired),
		errors.Is(err, models.ErrNameRequired),
		errors.Is(err, models.ErrLabelRequired):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.log.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		s.respondJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
