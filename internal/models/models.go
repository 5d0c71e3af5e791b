// Package models defines the typed records persisted per tenant path.
// Every collection has an explicit shape, validated at the store boundary
// before any write.
package models

import (
	"errors"
	"time"
)

var (
	ErrTitleRequired = errors.New("note title is required")
	ErrNameRequired  = errors.New("name is required")
	ErrLabelRequired = errors.New("backup label is required")
)

// Note is a study note owned exclusively by one tenant path.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tag       string    `json:"tag,omitempty"`
	Date      string    `json:"date,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DocID returns the assigned document id.
func (n *Note) DocID() string { return n.ID }

func (n *Note) Validate() error {
	if n.Title == "" {
		return ErrTitleRequired
	}
	return nil
}

// NotePatch carries the fields an update may merge into an existing note.
// Nil pointers leave the stored value untouched.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Tag     *string `json:"tag,omitempty"`
	Date    *string `json:"date,omitempty"`
}

// FileRecord is the document-store metadata for an uploaded file. BlobPath
// addresses the binary in blob storage; URL is the retrieval URL obtained
// after the upload completed. Legacy records predate blob storage and carry
// the payload inline in Data instead of a BlobPath.
type FileRecord struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	Date       string    `json:"date,omitempty"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"type,omitempty"`
	URL        string    `json:"url,omitempty"`
	BlobPath   string    `json:"blobPath,omitempty"`
	Data       string    `json:"data,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// DocID returns the assigned document id.
func (f *FileRecord) DocID() string { return f.ID }

func (f *FileRecord) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// FilePatch carries the metadata fields a file update may merge. The blob
// path and payload of an existing record are never patched.
type FilePatch struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Date     *string `json:"date,omitempty"`
}

// NoteSnapshot is a note copied into a backup, stripped of its document
// identity so the snapshot never aliases a live note.
type NoteSnapshot struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tag     string `json:"tag,omitempty"`
	Date    string `json:"date,omitempty"`
}

// FileMeta is the file summary kept in a backup. Blob contents are never
// duplicated into backups.
type FileMeta struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date,omitempty"`
}

// Backup is an immutable point-in-time copy of notes and file metadata.
type Backup struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Date       string         `json:"date,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	NotesCount int            `json:"notesCount"`
	FilesCount int            `json:"filesCount"`
	Notes      []NoteSnapshot `json:"notes"`
	FilesMeta  []FileMeta     `json:"filesMeta"`
}

// DocID returns the assigned document id.
func (b *Backup) DocID() string { return b.ID }

func (b *Backup) Validate() error {
	if b.Label == "" {
		return ErrLabelRequired
	}
	return nil
}

// BackupPatch allows relabeling a backup. The snapshot itself is immutable.
type BackupPatch struct {
	Label *string `json:"label,omitempty"`
}

// CatalogEntry is one course in the per-term catalog, scoped by storage key
// and term only (independent of any subject path).
type CatalogEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
	Credits  int    `json:"credits"`
	Order    int    `json:"order"`
}

func (e *CatalogEntry) Validate() error {
	if e.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// CatalogPatch carries the fields a catalog update may merge.
type CatalogPatch struct {
	Name     *string `json:"name,omitempty"`
	Icon     *string `json:"icon,omitempty"`
	Subtitle *string `json:"subtitle,omitempty"`
	Credits  *int    `json:"credits,omitempty"`
	Order    *int    `json:"order,omitempty"`
}

// SubjectInfo is the free-text card a subject page shows (professor and
// term period). Saved with merge semantics: empty fields keep what is
// already stored.
type SubjectInfo struct {
	Professor string `json:"professor,omitempty"`
	Period    string `json:"period,omitempty"`
}
