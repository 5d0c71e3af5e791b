package repomanager

import (
	"context"
	"database/sql"

	"github.com/studylab/studyvault/internal/dbx"
	"github.com/studylab/studyvault/internal/repositories/backups"
	"github.com/studylab/studyvault/internal/repositories/catalog"
	"github.com/studylab/studyvault/internal/repositories/files"
	"github.com/studylab/studyvault/internal/repositories/notes"
	"github.com/studylab/studyvault/internal/repositories/subjectinfo"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same
// repository code runs against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Notes(db dbx.DBTX) notes.Repository
	Files(db dbx.DBTX) files.Repository
	Backups(db dbx.DBTX) backups.Repository
	Catalog(db dbx.DBTX) catalog.Repository
	SubjectInfo(db dbx.DBTX) subjectinfo.Repository
}
