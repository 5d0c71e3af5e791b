package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/logging"
	"github.com/studylab/studyvault/internal/models"
	catalogrepo "github.com/studylab/studyvault/internal/repositories/catalog"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// memCatalogRepo keeps entries per (storageKey, term) in insertion order.
// The DBTX it is bound to only carries the transaction; the map is shared.
type memCatalogRepo struct {
	entries map[string][]*models.CatalogEntry
}

func newMemCatalogRepo() *memCatalogRepo {
	return &memCatalogRepo{entries: map[string][]*models.CatalogEntry{}}
}

func bucket(storageKey string, term int) string {
	return fmt.Sprintf("%s/%d", storageKey, term)
}

func (r *memCatalogRepo) List(ctx context.Context, storageKey string, term int) ([]*models.CatalogEntry, error) {
	src := r.entries[bucket(storageKey, term)]
	out := make([]*models.CatalogEntry, len(src))
	copy(out, src)
	return out, nil
}

func (r *memCatalogRepo) Insert(ctx context.Context, storageKey string, term int, e *models.CatalogEntry) error {
	e.ID = uuid.NewString()
	cp := *e
	k := bucket(storageKey, term)
	r.entries[k] = append(r.entries[k], &cp)
	return nil
}

func (r *memCatalogRepo) Update(ctx context.Context, storageKey string, term int, id string, patch models.CatalogPatch) error {
	for _, e := range r.entries[bucket(storageKey, term)] {
		if e.ID == id {
			if patch.Name != nil {
				e.Name = *patch.Name
			}
			if patch.Credits != nil {
				e.Credits = *patch.Credits
			}
			return nil
		}
	}
	return common.ErrNotFound
}

func (r *memCatalogRepo) Delete(ctx context.Context, storageKey string, term int, id string) error {
	k := bucket(storageKey, term)
	for i, e := range r.entries[k] {
		if e.ID == id {
			r.entries[k] = append(r.entries[k][:i], r.entries[k][i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memCatalogRepo) Count(ctx context.Context, storageKey string, term int) (int, error) {
	return len(r.entries[bucket(storageKey, term)]), nil
}

func newTestService(t *testing.T) (*Service, *memCatalogRepo) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:catalog_tests?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := newMemCatalogRepo()
	factory := func(dbx.DBTX) catalogrepo.Repository { return repo }
	return NewService(db, factory, "shared-admin", testLogger()), repo
}

func defaults() []*models.CatalogEntry {
	return []*models.CatalogEntry{
		{Name: "Mecánica Clásica", Icon: "fa-solid fa-atom", Credits: 4},
		{Name: "Ondas y Partículas", Icon: "fa-solid fa-wave-square", Credits: 4},
		{Name: "Cálculo Vectorial", Icon: "fa-solid fa-square-root-variable", Credits: 3},
	}
}

func TestSeed_PopulatesEmptyTermInOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, 1, defaults()))

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, e := range got {
		require.Equal(t, i, e.Order)
		require.NotEmpty(t, e.ID)
	}
	require.Equal(t, "Mecánica Clásica", got[0].Name)
}

func TestSeed_NonEmptyTermIsUntouched(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, &models.CatalogEntry{Name: "Existing", Credits: 2})
	require.NoError(t, err)

	err = svc.Seed(ctx, 1, defaults())
	require.ErrorIs(t, err, common.ErrAlreadySeeded)

	got, err := repo.List(ctx, "shared-admin", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Existing", got[0].Name)
}

func TestSeed_TermsAreIndependent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Seed(ctx, 1, defaults()))
	require.NoError(t, svc.Seed(ctx, 2, defaults()[:1]))

	one, err := svc.List(ctx, 1)
	require.NoError(t, err)
	two, err := svc.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, one, 3)
	require.Len(t, two, 1)
}

func TestEnsureSeeded_SwallowsAlreadySeeded(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureSeeded(ctx, 1, defaults()))
	require.NoError(t, svc.EnsureSeeded(ctx, 1, defaults()))

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)
}

func TestSeed_ValidatesBeforeWriting(t *testing.T) {
	svc, repo := newTestService(t)

	err := svc.Seed(context.Background(), 1, []*models.CatalogEntry{{Name: ""}})
	require.ErrorIs(t, err, models.ErrNameRequired)
	require.Empty(t, repo.entries)
}

func TestCrud(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Create(ctx, 3, &models.CatalogEntry{Name: "Electromagnetismo", Credits: 4})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	name := "Electromagnetismo I"
	require.NoError(t, svc.Update(ctx, 3, id, models.CatalogPatch{Name: &name}))

	got, err := svc.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, name, got[0].Name)

	require.NoError(t, svc.Delete(ctx, 3, id))
	got, err = svc.List(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestUpdate_MissingEntry(t *testing.T) {
	svc, _ := newTestService(t)

	name := "x"
	err := svc.Update(context.Background(), 1, "missing", models.CatalogPatch{Name: &name})
	require.ErrorIs(t, err, common.ErrNotFound)
}
