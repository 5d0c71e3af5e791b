package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// PostgresRepository implements file-metadata storage over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, name, category, display_date, size, mime_type, url, blob_path, inline_data, uploaded_at`

func scanRecord(row interface{ Scan(...any) error }) (*models.FileRecord, error) {
	var f models.FileRecord
	err := row.Scan(&f.ID, &f.Name, &f.Category, &f.Date, &f.Size, &f.MimeType,
		&f.URL, &f.BlobPath, &f.Data, &f.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns every file record under the tenant path, most recent upload
// first. Both blob-backed and legacy inline records come back.
func (r *PostgresRepository) List(ctx context.Context, path tenant.Path) ([]*models.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files
		WHERE storage_key=$1 AND subject_id=$2
		ORDER BY uploaded_at DESC`
	rows, err := r.db.QueryContext(ctx, query, path.StorageKey(), path.SubjectID())
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.FileRecord
	for rows.Next() {
		f, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores a new file record, assigning its id and upload timestamp.
func (r *PostgresRepository) Insert(ctx context.Context, path tenant.Path, f *models.FileRecord) error {
	f.ID = uuid.NewString()
	f.UploadedAt = time.Now().UTC()

	query := `INSERT INTO files (id, storage_key, subject_id, name, category, display_date, size, mime_type, url, blob_path, inline_data, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query,
		f.ID, path.StorageKey(), path.SubjectID(), f.Name, f.Category, f.Date,
		f.Size, f.MimeType, f.URL, f.BlobPath, f.Data, f.UploadedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Get returns a single record, or ErrNotFound.
func (r *PostgresRepository) Get(ctx context.Context, path tenant.Path, id string) (*models.FileRecord, error) {
	query := `SELECT ` + selectColumns + ` FROM files
		WHERE id=$1 AND storage_key=$2 AND subject_id=$3`
	f, err := scanRecord(r.db.QueryRowContext(ctx, query, id, path.StorageKey(), path.SubjectID()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select file: %w", err)
	}
	return f, nil
}

// Update merges the non-nil patch fields. Returns ErrNotFound when the id
// does not exist under the tenant path.
func (r *PostgresRepository) Update(ctx context.Context, path tenant.Path, id string, patch models.FilePatch) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Date != nil {
		add("display_date", *patch.Date)
	}
	if len(sets) == 0 {
		if _, err := r.Get(ctx, path, id); err != nil {
			return err
		}
		return nil
	}

	args = append(args, id, path.StorageKey(), path.SubjectID())
	query := fmt.Sprintf("UPDATE files SET %s WHERE id = $%d AND storage_key = $%d AND subject_id = $%d",
		strings.Join(sets, ", "), len(args)-2, len(args)-1, len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
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

// Delete removes a file record. Deleting a nonexistent id is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, path tenant.Path, id string) error {
	query := `DELETE FROM files WHERE id=$1 AND storage_key=$2 AND subject_id=$3`
	if _, err := r.db.ExecContext(ctx, query, id, path.StorageKey(), path.SubjectID()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
