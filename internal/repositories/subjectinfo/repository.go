package subjectinfo

import (
	"context"

	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// Repository persists the per-subject info card (professor, period).
// Get returns a zero value when nothing was stored yet; Save merges.
type Repository interface {
	Get(ctx context.Context, path tenant.Path) (models.SubjectInfo, error)
	Save(ctx context.Context, path tenant.Path, info models.SubjectInfo) error
}
