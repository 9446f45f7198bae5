package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/server/config"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/diaries"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/tags"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
}

func newMemoryServices(t *testing.T) (*UserService, *TagService, *DiaryService) {
	t.Helper()
	m := repomanager.NewMemoryRepositoryManager()
	return NewUserService(nil, m, testConfig()), NewTagService(nil, m), NewDiaryService(nil, m)
}

// overrideManager wraps a real manager and swaps in fakes for some repos.
type overrideManager struct {
	repomanager.RepositoryManager
	users   users.Repository
	tokens  refreshtokens.Repository
	diaries diaries.Repository
	tags    tags.Repository
}

func (m *overrideManager) Users(db dbx.DBTX) users.Repository {
	if m.users != nil {
		return m.users
	}
	return m.RepositoryManager.Users(db)
}

func (m *overrideManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	if m.tokens != nil {
		return m.tokens
	}
	return m.RepositoryManager.RefreshTokens(db)
}

func (m *overrideManager) Diaries(db dbx.DBTX) diaries.Repository {
	if m.diaries != nil {
		return m.diaries
	}
	return m.RepositoryManager.Diaries(db)
}

func (m *overrideManager) Tags(db dbx.DBTX) tags.Repository {
	if m.tags != nil {
		return m.tags
	}
	return m.RepositoryManager.Tags(db)
}

func (m *overrideManager) RunMigrations(context.Context, *sql.DB) error { return nil }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error
	getOut    []*models.User
	getErr    []error
	gets      int
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = "new"
	return u, nil
}

// GetUserByAccount replays getOut/getErr call by call.
func (f *fakeUsersRepo) GetUserByAccount(context.Context, string) (*models.User, error) {
	i := f.gets
	f.gets++
	var u *models.User
	var err error
	if i < len(f.getOut) {
		u = f.getOut[i]
	}
	if i < len(f.getErr) {
		err = f.getErr[i]
	}
	return u, err
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
}

func (f *fakeRefreshRepo) Create(context.Context, string, string, time.Duration) error {
	return f.createErr
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(context.Context, string) error { return f.delErr }

type failingTags struct{ err error }

func (f failingTags) Ensure(context.Context, string, string) (string, error) { return "", f.err }
func (f failingTags) ListByUser(context.Context, string) ([]*models.Tag, error) {
	return nil, f.err
}
