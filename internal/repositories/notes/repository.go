package notes

import (
	"context"

	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// Repository persists notes under a tenant path. Implementations assign the
// document id and creation timestamp on Insert.
type Repository interface {
	List(ctx context.Context, path tenant.Path) ([]*models.Note, error)
	Insert(ctx context.Context, path tenant.Path, n *models.Note) error
	Update(ctx context.Context, path tenant.Path, id string, patch models.NotePatch) error
	Delete(ctx context.Context, path tenant.Path, id string) error
}
