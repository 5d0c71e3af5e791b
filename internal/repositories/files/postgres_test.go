package files

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

var recordColumns = []string{"id", "name", "category", "display_date", "size", "mime_type", "url", "blob_path", "inline_data", "uploaded_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestList_ReturnsBothRecordShapes(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM files\b.*ORDER BY uploaded_at DESC$`).
		WithArgs("u1", "mecanica").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("f2", "taller.pdf", "Taller", "02/03/2026", int64(1024), "application/pdf",
				"https://blobs/f2", "users/u1/subjects/mecanica/files/170000_taller.pdf", "", now).
			AddRow("f1", "viejo.txt", "General", "01/01/2024", int64(0), "",
				"", "", "data:text/plain;base64,aG9sYQ==", now.Add(-time.Hour)))

	got, err := repo.List(context.Background(), testPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].BlobPath == "" || got[0].Data != "" {
		t.Fatalf("first record must be blob-backed: %+v", got[0])
	}
	if got[1].BlobPath != "" || got[1].Data == "" {
		t.Fatalf("second record must be legacy inline: %+v", got[1])
	}
}

func TestInsert_AssignsIDAndUploadTimestamp(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^INSERT INTO files\b`).
		WithArgs(sqlmock.AnyArg(), "u1", "mecanica", "taller.pdf", "Taller", "02/03/2026",
			int64(1024), "application/pdf", "https://blobs/f", "users/u1/subjects/mecanica/files/170000_taller.pdf",
			"", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	f := &models.FileRecord{
		Name:     "taller.pdf",
		Category: "Taller",
		Date:     "02/03/2026",
		Size:     1024,
		MimeType: "application/pdf",
		URL:      "https://blobs/f",
		BlobPath: "users/u1/subjects/mecanica/files/170000_taller.pdf",
	}
	if err := repo.Insert(context.Background(), testPath, f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.ID == "" || f.UploadedAt.IsZero() {
		t.Fatalf("Insert must assign id and timestamp: %+v", f)
	}
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*FROM files`).
		WithArgs("missing", "u1", "mecanica").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), testPath, "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func strp(s string) *string { return &s }

func TestUpdate_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^UPDATE files SET`).
		WithArgs("Parciales", "missing", "u1", "mecanica").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), testPath, "missing", models.FilePatch{Category: strp("Parciales")})
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE FROM files WHERE`).
		WithArgs("missing", "u1", "mecanica").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), testPath, "missing"); err != nil {
		t.Fatalf("delete of a nonexistent id must not fail: %v", err)
	}
}
