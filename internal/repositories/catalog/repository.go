package catalog

import (
	"context"

	"github.com/studylab/studyvault/internal/models"
)

// Repository persists the per-term course catalog. It is keyed by storage
// key and term number only; the subject path plays no part here.
type Repository interface {
	List(ctx context.Context, storageKey string, term int) ([]*models.CatalogEntry, error)
	Insert(ctx context.Context, storageKey string, term int, e *models.CatalogEntry) error
	Update(ctx context.Context, storageKey string, term int, id string, patch models.CatalogPatch) error
	Delete(ctx context.Context, storageKey string, term int, id string) error
	Count(ctx context.Context, storageKey string, term int) (int, error)
}
