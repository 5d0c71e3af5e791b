// Package transfer moves file payloads between clients and blob storage,
// keeping the metadata record and the stored blob consistent with each
// other.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/studylab/studyvault/internal/blob"
	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/logging"
	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/repositories/files"
	"github.com/studylab/studyvault/internal/tenant"
)

// keySegment keeps blob keys flat: anything outside a conservative
// character set collapses to an underscore so a crafted name cannot smuggle
// path separators into the key.
var keySegment = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeSegment(s string) string {
	return keySegment.ReplaceAllString(s, "_")
}

// UploadRequest describes one incoming file payload.
type UploadRequest struct {
	Name     string
	Category string
	Date     string
	Size     int64
	MimeType string
	Body     io.Reader

	// OnProgress, when set, receives the transfer percentage as bytes move.
	OnProgress blob.ProgressFunc
}

// DeleteResult reports which halves of a two-phase delete succeeded. The
// metadata record is authoritative: once it is gone the file no longer
// exists for the user, even if the blob removal failed and left an orphan.
type DeleteResult struct {
	MetadataDeleted bool `json:"metadataDeleted"`
	BlobDeleted     bool `json:"blobDeleted"`
}

// Pipeline uploads, resolves and deletes file payloads for one tenant path.
// Unlike the document collections it refuses loudly on an unresolved path:
// silently dropping a payload the user just picked would be worse than an
// error.
type Pipeline struct {
	path    tenant.Path
	store   blob.Store
	repo    files.Repository
	timeout time.Duration
	log     logging.Logger

	// now is swapped in tests to pin the blob key prefix.
	now func() time.Time
}

func NewPipeline(path tenant.Path, store blob.Store, repo files.Repository, timeout time.Duration, log logging.Logger) *Pipeline {
	return &Pipeline{
		path:    path,
		store:   store,
		repo:    repo,
		timeout: timeout,
		log:     log.With("component", "transfer"),
		now:     time.Now,
	}
}

// blobKey builds the storage key for a new payload. The millisecond prefix
// keeps same-named uploads from overwriting each other.
func (p *Pipeline) blobKey(name string) string {
	return fmt.Sprintf("users/%s/subjects/%s/files/%d_%s",
		p.path.StorageKey(),
		sanitizeSegment(p.path.SubjectID()),
		p.now().UnixMilli(),
		sanitizeSegment(name))
}

// Upload streams the payload to blob storage and, only once the blob is
// durably stored, records its metadata. The whole transfer is bounded by
// the pipeline timeout; a transfer that exceeds it fails with
// common.ErrUploadTimeout and writes no metadata.
func (p *Pipeline) Upload(ctx context.Context, req UploadRequest) (*models.FileRecord, error) {
	if !p.path.Resolved() {
		return nil, common.ErrPathUnresolved
	}
	rec := &models.FileRecord{
		Name:     req.Name,
		Category: req.Category,
		Date:     req.Date,
		Size:     req.Size,
		MimeType: req.MimeType,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	key := p.blobKey(req.Name)

	putCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.store.Put(putCtx, key, req.Body, req.Size, req.MimeType, req.OnProgress); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, common.ErrUploadTimeout
		}
		return nil, fmt.Errorf("uploading %q: %w", req.Name, err)
	}

	rec.BlobPath = key
	// The retrieval URL is part of the upload contract; failing here leaves
	// the blob stored but unrecorded, same as a metadata failure would.
	url, err := p.store.URL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("resolving URL for uploaded %q: %w", req.Name, err)
	}
	rec.URL = url

	if err := p.repo.Insert(ctx, p.path, rec); err != nil {
		return nil, fmt.Errorf("recording upload %q: %w", req.Name, err)
	}
	p.log.Info(ctx, "file uploaded", "id", rec.ID, "key", key, "size", req.Size)
	return rec, nil
}

// Download resolves a fresh retrieval URL for a stored file. Legacy records
// that carry their payload inline get a data URL instead.
func (p *Pipeline) Download(ctx context.Context, id string) (string, error) {
	if !p.path.Resolved() {
		return "", common.ErrPathUnresolved
	}
	rec, err := p.repo.Get(ctx, p.path, id)
	if err != nil {
		return "", err
	}
	if rec.BlobPath == "" {
		if rec.Data == "" {
			return "", fmt.Errorf("file %s has neither a blob nor inline data: %w", id, common.ErrNotFound)
		}
		return rec.Data, nil
	}
	url, err := p.store.URL(ctx, rec.BlobPath)
	if err != nil {
		return "", fmt.Errorf("resolving download for %s: %w", id, err)
	}
	return url, nil
}

// Delete removes a file in two phases: the stored blob first, best-effort,
// then the metadata record. A blob-phase failure is logged and swallowed;
// the record is still removed and the orphan is recoverable garbage, not an
// error the user can act on. A missing record is a no-op. Legacy inline
// records have no blob phase.
func (p *Pipeline) Delete(ctx context.Context, id string) (DeleteResult, error) {
	var res DeleteResult
	if !p.path.Resolved() {
		return res, common.ErrPathUnresolved
	}
	rec, err := p.repo.Get(ctx, p.path, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return res, nil
		}
		return res, err
	}
	if rec.BlobPath != "" {
		if err := p.store.Delete(ctx, rec.BlobPath); err != nil {
			p.log.Warn(ctx, "blob removal failed, deleting record anyway",
				"id", id, "key", rec.BlobPath, "error", err)
		} else {
			res.BlobDeleted = true
		}
	}
	if err := p.repo.Delete(ctx, p.path, id); err != nil {
		return res, fmt.Errorf("deleting record %s: %w", id, err)
	}
	res.MetadataDeleted = true
	return res, nil
}
