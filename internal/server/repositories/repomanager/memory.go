package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/tags"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/users"
)

// MemoryRepositoryManager serves every repository from one in-process store.
// The DBTX argument is ignored, so dbx.WithTx(nil, ...) is the expected way
// to run service transactions against it.
type MemoryRepositoryManager struct {
	store *memory.Store
}

// NewMemoryRepositoryManager creates a manager over a fresh store configured
// by opts.
func NewMemoryRepositoryManager(opts ...memory.Option) *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore(opts...)}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository {
	return m.store.Users()
}

func (m *MemoryRepositoryManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.store.RefreshTokens()
}

func (m *MemoryRepositoryManager) Diaries(dbx.DBTX) diaries.Repository {
	return m.store.Diaries()
}

func (m *MemoryRepositoryManager) Tags(dbx.DBTX) tags.Repository {
	return m.store.Tags()
}
