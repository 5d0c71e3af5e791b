package files

import (
	"context"

	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// Repository persists file metadata under a tenant path. The binary payload
// itself lives in blob storage; Get exists so the transfer pipeline can
// discover a record's blob path before deleting it.
type Repository interface {
	List(ctx context.Context, path tenant.Path) ([]*models.FileRecord, error)
	Insert(ctx context.Context, path tenant.Path, f *models.FileRecord) error
	Get(ctx context.Context, path tenant.Path, id string) (*models.FileRecord, error)
	Update(ctx context.Context, path tenant.Path, id string, patch models.FilePatch) error
	Delete(ctx context.Context, path tenant.Path, id string) error
}
