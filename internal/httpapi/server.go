// Package httpapi exposes the document collections, file transfers, backups
// and the course catalog over HTTP.
package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/studylab/studyvault/internal/backup"
	"github.com/studylab/studyvault/internal/blob"
	catalogsvc "github.com/studylab/studyvault/internal/catalog"
	"github.com/studylab/studyvault/internal/config"
	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/docstore"
	"github.com/studylab/studyvault/internal/identity"
	"github.com/studylab/studyvault/internal/logging"
	"github.com/studylab/studyvault/internal/models"
	catalogrepo "github.com/studylab/studyvault/internal/repositories/catalog"
	"github.com/studylab/studyvault/internal/repositories/repomanager"
	"github.com/studylab/studyvault/internal/tenant"
	"github.com/studylab/studyvault/internal/transfer"
)

// Server wires repositories, blob storage and identity into HTTP handlers.
type Server struct {
	db            *sql.DB
	repos         repomanager.RepositoryManager
	blobs         blob.Store
	policy        identity.Policy
	jwtSecret     []byte
	uploadTimeout time.Duration
	log           logging.Logger
}

func NewServer(cfg *config.Config, db *sql.DB, repos repomanager.RepositoryManager, blobs blob.Store, log logging.Logger) *Server {
	return &Server{
		db:            db,
		repos:         repos,
		blobs:         blobs,
		policy:        identity.NewPolicy(cfg.SharedStorageKey, cfg.AdminEmails),
		jwtSecret:     []byte(cfg.JWTSecret),
		uploadTimeout: cfg.UploadTimeout,
		log:           log,
	}
}

// Router builds the route tree. Every /api route requires a bearer token;
// the collection routes additionally need a resolvable subject.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Use(s.authenticate)

		r.Route("/notes", func(r chi.Router) {
			r.Use(s.pageContext)
			r.Get("/", s.handleNotesList)
			r.Post("/", s.handleNotesCreate)
			r.Patch("/{id}", s.handleNotesUpdate)
			r.Delete("/{id}", s.handleNotesDelete)
		})

		r.Route("/files", func(r chi.Router) {
			r.Use(s.pageContext)
			r.Get("/", s.handleFilesList)
			r.Post("/", s.handleFilesUpload)
			r.Get("/{id}/download", s.handleFilesDownload)
			r.Patch("/{id}", s.handleFilesUpdate)
			r.Delete("/{id}", s.handleFilesDelete)
		})

		r.Route("/backups", func(r chi.Router) {
			r.Use(s.pageContext)
			r.Get("/", s.handleBackupsList)
			r.Post("/", s.handleBackupsCreate)
			r.Post("/{id}/restore", s.handleBackupsRestore)
			r.Patch("/{id}", s.handleBackupsRelabel)
			r.Delete("/{id}", s.handleBackupsDelete)
		})

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleCatalogList)
			r.Post("/", s.handleCatalogCreate)
			r.Post("/seed", s.handleCatalogSeed)
			r.Patch("/{id}", s.handleCatalogUpdate)
			r.Delete("/{id}", s.handleCatalogDelete)
		})

		r.Route("/subject-info", func(r chi.Router) {
			r.Use(s.pageContext)
			r.Get("/", s.handleSubjectInfoGet)
			r.Put("/", s.handleSubjectInfoSave)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.PingContext(r.Context()); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Per-request constructors. Each handler builds its collection against the
// tenant path the middleware resolved, so a request with no subject gets
// the collections' unresolved-path behavior, not a panic.

func (s *Server) notes(r *http.Request) *docstore.Collection[*models.Note, models.NotePatch] {
	return docstore.NewCollection[*models.Note, models.NotePatch](
		"notes", pathFrom(r.Context()), s.repos.Notes(s.db), s.log)
}

func (s *Server) fileRecords(r *http.Request) *docstore.Collection[*models.FileRecord, models.FilePatch] {
	return docstore.NewCollection[*models.FileRecord, models.FilePatch](
		"files", pathFrom(r.Context()), s.repos.Files(s.db), s.log)
}

func (s *Server) pipeline(r *http.Request) *transfer.Pipeline {
	return transfer.NewPipeline(pathFrom(r.Context()), s.blobs, s.repos.Files(s.db), s.uploadTimeout, s.log)
}

func (s *Server) backups(r *http.Request) *backup.Engine {
	path := pathFrom(r.Context())
	return backup.NewEngine(path, s.repos.Backups(s.db), s.repos.Notes(s.db), s.repos.Files(s.db), s.log)
}

func (s *Server) catalog(r *http.Request) *catalogsvc.Service {
	factory := func(db dbx.DBTX) catalogrepo.Repository { return s.repos.Catalog(db) }
	return catalogsvc.NewService(s.db, factory, storageKeyFrom(r.Context()), s.log)
}

func (s *Server) subjectPath(r *http.Request) tenant.Path {
	return pathFrom(r.Context())
}
