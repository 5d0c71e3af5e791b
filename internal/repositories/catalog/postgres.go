package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/models"
)

// PostgresRepository implements catalog storage over a dbx.DBTX. Binding to
// DBTX lets the seeding flow run every insert inside one transaction.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns the term's catalog ordered by position.
func (r *PostgresRepository) List(ctx context.Context, storageKey string, term int) ([]*models.CatalogEntry, error) {
	query := `SELECT id, name, icon, subtitle, credits, ord FROM catalog_entries
		WHERE storage_key=$1 AND term=$2
		ORDER BY ord ASC`
	rows, err := r.db.QueryContext(ctx, query, storageKey, term)
	if err != nil {
		return nil, fmt.Errorf("failed to select catalog: %w", err)
	}
	defer rows.Close()

	var result []*models.CatalogEntry
	for rows.Next() {
		var item models.CatalogEntry
		if err := rows.Scan(&item.ID, &item.Name, &item.Icon, &item.Subtitle, &item.Credits, &item.Order); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Insert stores a new catalog entry, assigning its id.
func (r *PostgresRepository) Insert(ctx context.Context, storageKey string, term int, e *models.CatalogEntry) error {
	e.ID = uuid.NewString()

	query := `INSERT INTO catalog_entries (id, storage_key, term, name, icon, subtitle, credits, ord)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, storageKey, term, e.Name, e.Icon, e.Subtitle, e.Credits, e.Order)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update merges the non-nil patch fields. Returns ErrNotFound when the id
// does not exist for this storage key and term.
func (r *PostgresRepository) Update(ctx context.Context, storageKey string, term int, id string, patch models.CatalogPatch) error {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Icon != nil {
		add("icon", *patch.Icon)
	}
	if patch.Subtitle != nil {
		add("subtitle", *patch.Subtitle)
	}
	if patch.Credits != nil {
		add("credits", *patch.Credits)
	}
	if patch.Order != nil {
		add("ord", *patch.Order)
	}
	if len(sets) == 0 {
		var one int
		query := `SELECT 1 FROM catalog_entries WHERE id=$1 AND storage_key=$2 AND term=$3`
		if err := r.db.QueryRowContext(ctx, query, id, storageKey, term).Scan(&one); err != nil {
			return common.ErrNotFound
		}
		return nil
	}

	args = append(args, id, storageKey, term)
	query := fmt.Sprintf("UPDATE catalog_entries SET %s WHERE id = $%d AND storage_key = $%d AND term = $%d",
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

// Delete removes an entry. Deleting a nonexistent id is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, storageKey string, term int, id string) error {
	query := `DELETE FROM catalog_entries WHERE id=$1 AND storage_key=$2 AND term=$3`
	if _, err := r.db.ExecContext(ctx, query, id, storageKey, term); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Count reports how many entries the term already has.
func (r *PostgresRepository) Count(ctx context.Context, storageKey string, term int) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM catalog_entries WHERE storage_key=$1 AND term=$2`
	if err := r.db.QueryRowContext(ctx, query, storageKey, term).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count catalog: %w", err)
	}
	return n, nil
}
