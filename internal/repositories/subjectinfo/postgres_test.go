package subjectinfo

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

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

func TestGet_ZeroValueWhenAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT professor, period FROM subject_info`).
		WithArgs("u1", "mecanica").
		WillReturnError(sql.ErrNoRows)

	info, err := repo.Get(context.Background(), testPath)
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if info != (models.SubjectInfo{}) {
		t.Fatalf("expected zero value, got %+v", info)
	}
}

func TestSave_Upserts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT INTO subject_info\b.*ON CONFLICT \(storage_key, subject_id\)`).
		WithArgs("u1", "mecanica", "Dr. Galvis", "2026-I").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), testPath, models.SubjectInfo{Professor: "Dr. Galvis", Period: "2026-I"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
