package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsers_CreateAndGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u, err := s.Users().Create(ctx, &models.User{Account: "alice", Salt: []byte("s")})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)

	_, err = s.Users().Create(ctx, &models.User{Account: "alice"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)

	got, err := s.Users().GetUserByAccount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users().GetUserByAccount(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRefreshTokens(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.RefreshTokens().Create(ctx, "u1", "tok", time.Hour))
	rt, err := s.RefreshTokens().Find(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", rt.UserID)
	assert.True(t, rt.Expires.After(time.Now()))

	require.NoError(t, s.RefreshTokens().Delete(ctx, "tok"))
	require.NoError(t, s.RefreshTokens().Delete(ctx, "tok"))
	_, err = s.RefreshTokens().Find(ctx, "tok")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDiaries_NewestFirstWithFrozenClock(t *testing.T) {
	frozen := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return frozen }))
	ctx := context.Background()

	a, _ := s.Diaries().Create(ctx, &models.Diary{UserID: "u1", Title: "a"})
	b, _ := s.Diaries().Create(ctx, &models.Diary{UserID: "u1", Title: "b"})
	_, _ = s.Diaries().Create(ctx, &models.Diary{UserID: "u2", Title: "c"})

	list, err := s.Diaries().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)
}

func TestDiaries_UpdateDeleteAndIsolation(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	d, _ := s.Diaries().Create(ctx, &models.Diary{UserID: "u1", Title: "a", Tags: []string{"x"}})
	d.Tags[0] = "mutated"

	got, err := s.Diaries().GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got.Tags)

	got.Title = "b"
	got.Tags = nil
	require.NoError(t, s.Diaries().Update(ctx, got))
	again, _ := s.Diaries().GetByID(ctx, d.ID)
	assert.Equal(t, "b", again.Title)
	assert.Empty(t, again.Tags)
	assert.Equal(t, d.CreatedAt, again.CreatedAt)

	require.NoError(t, s.Diaries().Delete(ctx, d.ID))
	assert.ErrorIs(t, s.Diaries().Delete(ctx, d.ID), common.ErrorNotFound)
	assert.ErrorIs(t, s.Diaries().Update(ctx, got), common.ErrorNotFound)
}

func TestTags_EnsureConcurrentSingleRow(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i], _ = s.Tags().Ensure(ctx, "u1", "work")
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	_, _ = s.Tags().Ensure(ctx, "u1", "art")
	_, _ = s.Tags().Ensure(ctx, "u2", "work")

	list, err := s.Tags().ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "art", list[0].Name)
	assert.Equal(t, "work", list[1].Name)
}
