package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/transfer"
)

// maxUploadMemory bounds how much of a multipart body is buffered in memory
// before spilling to disk.
const maxUploadMemory = 10 << 20

func (s *Server) handleFilesList(w http.ResponseWriter, r *http.Request) {
	recs, err := s.fileRecords(r).List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*models.FileRecord{}
	}
	s.respondJSON(w, http.StatusOK, recs)
}

// handleFilesUpload accepts a multipart form with a "file" part and
// optional "category" and "date" fields, and streams the payload through
// the transfer pipeline.
func (s *Server) handleFilesUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file part"})
		return
	}
	defer file.Close()

	rec, err := s.pipeline(r).Upload(r.Context(), transfer.UploadRequest{
		Name:     header.Filename,
		Category: r.FormValue("category"),
		Date:     r.FormValue("date"),
		Size:     header.Size,
		MimeType: header.Header.Get("Content-Type"),
		Body:     file,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusCreated, rec)
}

// handleFilesDownload redirects to a fresh retrieval URL. Legacy inline
// records get their data URL in a JSON body instead of a redirect.
func (s *Server) handleFilesDownload(w http.ResponseWriter, r *http.Request) {
	url, err := s.pipeline(r).Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if len(url) > 5 && url[:5] == "data:" {
		s.respondJSON(w, http.StatusOK, map[string]string{"data": url})
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (s *Server) handleFilesUpdate(w http.ResponseWriter, r *http.Request) {
	var patch models.FilePatch
	if err := decodeJSON(r, &patch); err != nil {
		s.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := s.fileRecords(r).Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, nil)
}

func (s *Server) handleFilesDelete(w http.ResponseWriter, r *http.Request) {
	res, err := s.pipeline(r).Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, res)
}
