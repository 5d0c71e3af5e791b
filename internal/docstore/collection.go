// Package docstore gives every tenant-scoped collection one set of access
// semantics: newest-first listing, server-assigned ids and timestamps, merge
// updates, idempotent deletes, and a graceful degrade when the tenant path
// has not been resolved yet.
package docstore

import (
	"context"

	"github.com/studylab/studyvault/internal/logging"
	"github.com/studylab/studyvault/internal/tenant"
)

// Document is anything a collection stores.
type Document interface {
	DocID() string
	Validate() error
}

// Repository is the persistence contract a collection runs on. T is a
// pointer type; Insert assigns the id and timestamp into the document.
type Repository[T Document, P any] interface {
	List(ctx context.Context, path tenant.Path) ([]T, error)
	Insert(ctx context.Context, path tenant.Path, doc T) error
	Update(ctx context.Context, path tenant.Path, id string, patch P) error
	Delete(ctx context.Context, path tenant.Path, id string) error
}

// Collection binds one named sub-collection to a tenant path.
//
// Reads and writes against an unresolved path degrade to no-ops (an empty
// list, an empty id) rather than erroring or writing to a guessable
// location. The one deliberate exception lives in the transfer pipeline,
// which refuses loudly instead of dropping a user's file.
type Collection[T Document, P any] struct {
	name string
	path tenant.Path
	repo Repository[T, P]
	log  logging.Logger
}

func NewCollection[T Document, P any](name string, path tenant.Path, repo Repository[T, P], log logging.Logger) *Collection[T, P] {
	return &Collection[T, P]{
		name: name,
		path: path,
		repo: repo,
		log:  log.With("collection", name),
	}
}

// Path returns the tenant path this collection is bound to.
func (c *Collection[T, P]) Path() tenant.Path { return c.path }

// List returns all documents, most recent first. An unresolved path yields
// an empty sequence, never an error.
func (c *Collection[T, P]) List(ctx context.Context) ([]T, error) {
	if !c.path.Resolved() {
		return nil, nil
	}
	return c.repo.List(ctx, c.path)
}

// Create validates and stores a document, returning the assigned id. An
// unresolved path yields an empty id and no write.
func (c *Collection[T, P]) Create(ctx context.Context, doc T) (string, error) {
	if !c.path.Resolved() {
		c.log.Debug(ctx, "create skipped, tenant path unresolved")
		return "", nil
	}
	if err := doc.Validate(); err != nil {
		return "", err
	}
	if err := c.repo.Insert(ctx, c.path, doc); err != nil {
		return "", err
	}
	return doc.DocID(), nil
}

// Update merges the patch into an existing document. Fails with ErrNotFound
// when the id does not exist. No-ops on an unresolved path.
func (c *Collection[T, P]) Update(ctx context.Context, id string, patch P) error {
	if !c.path.Resolved() {
		c.log.Debug(ctx, "update skipped, tenant path unresolved")
		return nil
	}
	return c.repo.Update(ctx, c.path, id, patch)
}

// Delete removes a document. Idempotent; no-ops on an unresolved path.
func (c *Collection[T, P]) Delete(ctx context.Context, id string) error {
	if !c.path.Resolved() {
		c.log.Debug(ctx, "delete skipped, tenant path unresolved")
		return nil
	}
	return c.repo.Delete(ctx, c.path, id)
}
