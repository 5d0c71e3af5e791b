package backups

import (
	"context"

	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// Repository persists backup snapshots under a tenant path. Snapshots are
// treated as immutable by the backup engine; only the label may ever be
// patched.
type Repository interface {
	List(ctx context.Context, path tenant.Path) ([]*models.Backup, error)
	Insert(ctx context.Context, path tenant.Path, b *models.Backup) error
	Get(ctx context.Context, path tenant.Path, id string) (*models.Backup, error)
	Update(ctx context.Context, path tenant.Path, id string, patch models.BackupPatch) error
	Delete(ctx context.Context, path tenant.Path, id string) error
}
