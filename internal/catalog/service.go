// Package catalog manages the per-term course list, including the one-time
// seeding of a term from a default set.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/logging"
	"github.com/studylab/studyvault/internal/models"
	catalogrepo "github.com/studylab/studyvault/internal/repositories/catalog"
)

// RepoFactory hands out a catalog repository bound to a DBTX, so Seed can
// run its check-then-insert inside one transaction.
type RepoFactory func(db dbx.DBTX) catalogrepo.Repository

// Service exposes catalog operations for one storage key.
type Service struct {
	db    *sql.DB
	repos RepoFactory
	key   string
	log   logging.Logger
}

func NewService(db *sql.DB, repos RepoFactory, storageKey string, log logging.Logger) *Service {
	return &Service{
		db:    db,
		repos: repos,
		key:   storageKey,
		log:   log.With("component", "catalog"),
	}
}

// List returns the term's entries in display order.
func (s *Service) List(ctx context.Context, term int) ([]*models.CatalogEntry, error) {
	return s.repos(s.db).List(ctx, s.key, term)
}

// Create validates and inserts one entry.
func (s *Service) Create(ctx context.Context, term int, e *models.CatalogEntry) (string, error) {
	if err := e.Validate(); err != nil {
		return "", err
	}
	if err := s.repos(s.db).Insert(ctx, s.key, term, e); err != nil {
		return "", err
	}
	return e.ID, nil
}

// Update merges the patch into an existing entry.
func (s *Service) Update(ctx context.Context, term int, id string, patch models.CatalogPatch) error {
	return s.repos(s.db).Update(ctx, s.key, term, id, patch)
}

// Delete removes an entry. Absent ids are not an error.
func (s *Service) Delete(ctx context.Context, term int, id string) error {
	return s.repos(s.db).Delete(ctx, s.key, term, id)
}

// Seed populates an empty term with the given entries, preserving their
// order. The emptiness check and the inserts run in one transaction, so two
// concurrent seeds cannot interleave into duplicates. A term that already
// has entries fails with common.ErrAlreadySeeded and is left untouched.
func (s *Service) Seed(ctx context.Context, term int, entries []*models.CatalogEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos(tx)
		n, err := repo.Count(ctx, s.key, term)
		if err != nil {
			return err
		}
		if n > 0 {
			return common.ErrAlreadySeeded
		}
		for i, e := range entries {
			e.Order = i
			if err := repo.Insert(ctx, s.key, term, e); err != nil {
				return fmt.Errorf("seeding entry %q: %w", e.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "catalog seeded", "term", term, "entries", len(entries))
	return nil
}

// EnsureSeeded seeds the term when empty and quietly does nothing when it
// is not. Callers that only want the term populated use this instead of
// Seed.
func (s *Service) EnsureSeeded(ctx context.Context, term int, entries []*models.CatalogEntry) error {
	err := s.Seed(ctx, term, entries)
	if errors.Is(err, common.ErrAlreadySeeded) {
		return nil
	}
	return err
}
