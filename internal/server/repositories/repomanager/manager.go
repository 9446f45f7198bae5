// Package repomanager vends repository implementations bound to a DBTX so
// services can run them inside or outside a transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/tags"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Diaries(db dbx.DBTX) diaries.Repository
	Tags(db dbx.DBTX) tags.Repository
}
