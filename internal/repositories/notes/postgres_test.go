package notes

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/studylab/studyvault/internal/common"
	"github.com/studylab/studyvault/internal/models"
	"github.com/studylab/studyvault/internal/tenant"
)

var testPath = tenant.NewPath("u1", "mecanica")

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList_OrderedNewestFirst(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	q := `(?s)^SELECT\s+id, title, content, tag, display_date, created_at FROM notes\b.*ORDER BY created_at DESC$`
	mock.ExpectQuery(q).
		WithArgs("u1", "mecanica").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "content", "tag", "display_date", "created_at"}).
			AddRow("n2", "Law 2", "F=dp/dt", "Clase", "02/03/2026", now).
			AddRow("n1", "Law 1", "F=ma", "Clase", "01/03/2026", now.Add(-time.Hour)))

	got, err := repo.List(context.Background(), testPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "n2" || got[1].ID != "n1" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestInsert_AssignsIDAndTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^INSERT INTO notes\b`).
		WithArgs(sqlmock.AnyArg(), "u1", "mecanica", "Law 1", "F=ma", "Clase", "01/03/2026", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n := &models.Note{Title: "Law 1", Content: "F=ma", Tag: "Clase", Date: "01/03/2026"}
	if err := repo.Insert(context.Background(), testPath, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID == "" {
		t.Fatal("Insert must assign an id")
	}
	if n.CreatedAt.IsZero() {
		t.Fatal("Insert must assign a creation timestamp")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func strp(s string) *string { return &s }

func TestUpdate_MergesOnlyPatchedFields(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE notes SET title = \$1, content = \$2 WHERE id = \$3`).
		WithArgs("New title", "New content", "n1", "u1", "mecanica").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), testPath, "n1", models.NotePatch{
		Title:   strp("New title"),
		Content: strp("New content"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE notes SET`).
		WithArgs("x", "missing", "u1", "mecanica").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), testPath, "missing", models.NotePatch{Title: strp("x")})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_IdempotentOnMissingID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM notes WHERE`).
		WithArgs("missing", "u1", "mecanica").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), testPath, "missing"); err != nil {
		t.Fatalf("delete of a nonexistent id must not fail: %v", err)
	}
}
