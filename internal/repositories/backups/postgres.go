package backups

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// PostgresRepository implements backup storage over a dbx.DBTX. The note
// and file snapshots are stored as jsonb columns.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanBackup(row interface{ Scan(...any) error }) (*models.Backup, error) {
	var b models.Backup
	var notesRaw, filesRaw []byte
	err := row.Scan(&b.ID, &b.Label, &b.Date, &b.NotesCount, &b.FilesCount, &notesRaw, &filesRaw, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(notesRaw, &b.Notes); err != nil {
		return nil, fmt.Errorf("decoding notes snapshot: %w", err)
	}
	if err := json.Unmarshal(filesRaw, &b.FilesMeta); err != nil {
		return nil, fmt.Errorf("decoding files snapshot: %w", err)
	}
	return &b, nil
}

const selectColumns = `id, label, display_date, notes_count, files_count, notes, files_meta, created_at`

// List returns every backup under the tenant path, most recent first.
func (r *PostgresRepository) List(ctx context.Context, path tenant.Path) ([]*models.Backup, error) {
	query := `SELECT ` + selectColumns + ` FROM backups
		WHERE storage_key=$1 AND subject_id=$2
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, path.StorageKey(), path.SubjectID())
	if err != nil {
		return nil, fmt.Errorf("failed to select backups: %w", err)
	}
	defer rows.Close()

	var result []*models.Backup
	for rows.Next() {
		b, err := scanBackup(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores a new backup, assigning its id and creation timestamp.
func (r *PostgresRepository) Insert(ctx context.Context, path tenant.Path, b *models.Backup) error {
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()

	notesRaw, err := json.Marshal(b.Notes)
	if err != nil {
		return fmt.Errorf("encoding notes snapshot: %w", err)
	}
	filesRaw, err := json.Marshal(b.FilesMeta)
	if err != nil {
		return fmt.Errorf("encoding files snapshot: %w", err)
	}

	query := `INSERT INTO backups (id, storage_key, subject_id, label, display_date, notes_count, files_count, notes, files_meta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.db.ExecContext(ctx, query,
		b.ID, path.StorageKey(), path.SubjectID(), b.Label, b.Date,
		b.NotesCount, b.FilesCount, notesRaw, filesRaw, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Get returns a single backup, or ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, path tenant.Path, id string) (*models.Backup, error) {
	query := `SELECT ` + selectColumns + ` FROM backups
		WHERE id=$1 AND storage_key=$2 AND subject_id=$3`
	b, err := scanBackup(r.db.QueryRowContext(ctx, query, id, path.StorageKey(), path.SubjectID()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select backup: %w", err)
	}
	return b, nil
}

// Update relabels a backup. Returns ErrNotFound when the id does not exist
// under the tenant path.
func (r *PostgresRepository) Update(ctx context.Context, path tenant.Path, id string, patch models.BackupPatch) error {
	if patch.Label == nil {
		if _, err := r.Get(ctx, path, id); err != nil {
			return err
		}
		return nil
	}

	query := `UPDATE backups SET label=$1 WHERE id=$2 AND storage_key=$3 AND subject_id=$4`
	res, err := r.db.ExecContext(ctx, query, *patch.Label, id, path.StorageKey(), path.SubjectID())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes a backup. Deleting a nonexistent id is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, path tenant.Path, id string) error {
	query := `DELETE FROM backups WHERE id=$1 AND storage_key=$2 AND subject_id=$3`
	if _, err := r.db.ExecContext(ctx, query, id, path.StorageKey(), path.SubjectID()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
