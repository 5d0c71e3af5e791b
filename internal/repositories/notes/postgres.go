package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every note under the tenant path, most recent first.
func (r *PostgresRepository) List(ctx context.Context, path tenant.Path) ([]*models.Note, error) {
	query := `SELECT id, title, content, tag, display_date, created_at FROM notes
		WHERE storage_key=$1 AND subject_id=$2
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, path.StorageKey(), path.SubjectID())
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Tag, &item.Date, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores a new note, assigning its id and creation timestamp.
func (r *PostgresRepository) Insert(ctx context.Context, path tenant.Path, n *models.Note) error {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()

	query := `INSERT INTO notes (id, storage_key, subject_id, title, content, tag, display_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, path.StorageKey(), path.SubjectID(), n.Title, n.Content, n.Tag, n.Date, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update merges the non-nil patch fields into an existing note. Returns
// ErrNotFound when the id does not exist under the tenant path.
func (r *PostgresRepository) Update(ctx context.Context, path tenant.Path, id string, patch models.NotePatch) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Content != nil {
		add("content", *patch.Content)
	}
	if patch.Tag != nil {
		add("tag", *patch.Tag)
	}
	if patch.Date != nil {
		add("display_date", *patch.Date)
	}
	if len(sets) == 0 {
		// empty merge still has to report a missing id
		return r.exists(ctx, path, id)
	}

	args = append(args, id, path.StorageKey(), path.SubjectID())
	query := fmt.Sprintf("UPDATE notes SET %s WHERE id = $%d AND storage_key = $%d AND subject_id = $%d",
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

func (r *PostgresRepository) exists(ctx context.Context, path tenant.Path, id string) error {
	var one int
	query := `SELECT 1 FROM notes WHERE id=$1 AND storage_key=$2 AND subject_id=$3`
	if err := r.db.QueryRowContext(ctx, query, id, path.StorageKey(), path.SubjectID()).Scan(&one); err != nil {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes a note. Deleting a nonexistent id is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, path tenant.Path, id string) error {
	query := `DELETE FROM notes WHERE id=$1 AND storage_key=$2 AND subject_id=$3`
	if _, err := r.db.ExecContext(ctx, query, id, path.StorageKey(), path.SubjectID()); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
