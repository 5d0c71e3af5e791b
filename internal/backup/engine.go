// Package backup snapshots a subject's notes and file metadata, and restores
// notes from a snapshot back into the live collection.
package backup

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/logging"
	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/repositories/backups"
	filesrepo "github.com/studylab/studyvault/internal/repositories/files"
	"github.com/studylab/studyvault/internal/repositories/notes"
	"github.com/studylab/studyvault/internal/tenant"
)

// Engine creates, restores and deletes backups for one tenant path.
//
// A snapshot is not atomic: the notes and files collections are read as two
// separate queries, so a write landing between them can appear in one half
// and not the other. Acceptable for a single-user notebook.
type Engine struct {
	path    tenant.Path
	backups backups.Repository
	notes   notes.Repository
	files   filesrepo.Repository
	log     logging.Logger
}

func NewEngine(path tenant.Path, b backups.Repository, n notes.Repository, f filesrepo.Repository, log logging.Logger) *Engine {
	return &Engine{
		path:    path,
		backups: b,
		notes:   n,
		files:   f,
		log:     log.With("component", "backup"),
	}
}

// Create snapshots the current notes and file metadata under the given
// label. Notes are copied in full but stripped of their ids and timestamps;
// files contribute metadata only, never blob contents.
func (e *Engine) Create(ctx context.Context, label, date string) (*models.Backup, error) {
	if !e.path.Resolved() {
		return nil, common.ErrPathUnresolved
	}

	var (
		liveNotes []*models.Note
		liveFiles []*models.FileRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		liveNotes, err = e.notes.List(gctx, e.path)
		return err
	})
	g.Go(func() error {
		var err error
		liveFiles, err = e.files.List(gctx, e.path)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reading collections for backup: %w", err)
	}

	b := &models.Backup{
		Label:      label,
		Date:       date,
		NotesCount: len(liveNotes),
		FilesCount: len(liveFiles),
		Notes:      make([]models.NoteSnapshot, 0, len(liveNotes)),
		FilesMeta:  make([]models.FileMeta, 0, len(liveFiles)),
	}
	for _, n := range liveNotes {
		b.Notes = append(b.Notes, models.NoteSnapshot{
			Title:   n.Title,
			Content: n.Content,
			Tag:     n.Tag,
			Date:    n.Date,
		})
	}
	for _, f := range liveFiles {
		b.FilesMeta = append(b.FilesMeta, models.FileMeta{
			Name:     f.Name,
			Category: f.Category,
			Date:     f.Date,
		})
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := e.backups.Insert(ctx, e.path, b); err != nil {
		return nil, fmt.Errorf("storing backup: %w", err)
	}
	e.log.Info(ctx, "backup created", "id", b.ID, "notes", b.NotesCount, "files", b.FilesCount)
	return b, nil
}

// List returns all backups, newest first.
func (e *Engine) List(ctx context.Context) ([]*models.Backup, error) {
	if !e.path.Resolved() {
		return nil, nil
	}
	return e.backups.List(ctx, e.path)
}

// Restore re-creates every note in the snapshot as a fresh document with a
// new id and timestamp. Existing notes are left untouched; restoring twice
// duplicates the snapshot's notes. Files are not restored; the snapshot
// never held their contents.
func (e *Engine) Restore(ctx context.Context, id string) (*models.Backup, error) {
	if !e.path.Resolved() {
		return nil, common.ErrPathUnresolved
	}
	b, err := e.backups.Get(ctx, e.path, id)
	if err != nil {
		return nil, err
	}
	for _, snap := range b.Notes {
		n := &models.Note{
			Title:   snap.Title,
			Content: snap.Content,
			Tag:     snap.Tag,
			Date:    snap.Date,
		}
		if err := e.notes.Insert(ctx, e.path, n); err != nil {
			return nil, fmt.Errorf("restoring note %q: %w", snap.Title, err)
		}
	}
	e.log.Info(ctx, "backup restored", "id", b.ID, "notes", len(b.Notes))
	return b, nil
}

// Relabel updates a backup's label. The snapshot payload is immutable.
func (e *Engine) Relabel(ctx context.Context, id, label string) error {
	if !e.path.Resolved() {
		return nil
	}
	return e.backups.Update(ctx, e.path, id, models.BackupPatch{Label: &label})
}

// Delete removes a backup. Deleting an absent id is not an error.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if !e.path.Resolved() {
		return nil
	}
	return e.backups.Delete(ctx, e.path, id)
}
