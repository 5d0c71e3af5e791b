package subjectinfo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// PostgresRepository implements subject-info storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get returns the stored info card, or a zero value when absent.
func (r *PostgresRepository) Get(ctx context.Context, path tenant.Path) (models.SubjectInfo, error) {
	var info models.SubjectInfo
	query := `SELECT professor, period FROM subject_info WHERE storage_key=$1 AND subject_id=$2`
	err := r.db.QueryRowContext(ctx, query, path.StorageKey(), path.SubjectID()).Scan(&info.Professor, &info.Period)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SubjectInfo{}, nil
	}
	if err != nil {
		return models.SubjectInfo{}, fmt.Errorf("failed to select subject info: %w", err)
	}
	return info, nil
}

// Save upserts with merge semantics: empty incoming fields keep whatever is
// already stored, matching how the page edits one field at a time.
func (r *PostgresRepository) Save(ctx context.Context, path tenant.Path, info models.SubjectInfo) error {
	query := `INSERT INTO subject_info (storage_key, subject_id, professor, period)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (storage_key, subject_id)
		DO UPDATE SET
			professor = CASE WHEN EXCLUDED.professor = '' THEN subject_info.professor ELSE EXCLUDED.professor END,
			period = CASE WHEN EXCLUDED.period = '' THEN subject_info.period ELSE EXCLUDED.period END`
	_, err := r.db.ExecContext(ctx, query, path.StorageKey(), path.SubjectID(), info.Professor, info.Period)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
