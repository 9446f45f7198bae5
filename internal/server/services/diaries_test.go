package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_RoundTripAndTagRegistration(t *testing.T) {
	_, ts, ds := newMemoryServices(t)
	ctx := context.Background()

	id, err := ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C", Mood: "M", Tags: []string{"work", "work", "life"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	list, err := ds.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "T", list[0].Title)
	assert.Equal(t, "C", list[0].Content)
	assert.Equal(t, "M", list[0].Mood)
	assert.Equal(t, []string{"work", "life"}, list[0].Tags)
	assert.False(t, list[0].CreatedAt.IsZero())

	tags, err := ts.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "life", tags[0].Name)
	assert.Equal(t, "work", tags[1].Name)
}

func TestSave_TagCapCountsDistinctTags(t *testing.T) {
	_, ts, ds := newMemoryServices(t)
	ctx := context.Background()

	_, err := ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C", Tags: []string{"a", "b", "a", "c", "b"}})
	require.NoError(t, err)

	_, err = ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C", Tags: []string{"a", "b", "c", "d"}})
	assert.ErrorIs(t, err, common.ErrTagLimitExceeded)

	tags, _ := ts.List(ctx, "u1")
	assert.Len(t, tags, 3, "rejected save must not register tag d")
	list, _ := ds.List(ctx, "u1", "")
	assert.Len(t, list, 1)
}

func TestSave_Validation(t *testing.T) {
	_, _, ds := newMemoryServices(t)
	ctx := context.Background()

	_, err := ds.Save(ctx, "u1", DiaryInput{Content: "C"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = ds.Save(ctx, "u1", DiaryInput{Title: "T"})
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C", Tags: []string{" "}})
	assert.ErrorIs(t, err, common.ErrorValidation)
}

func TestSave_TagFailureLeavesNoEntry(t *testing.T) {
	mem := repomanager.NewMemoryRepositoryManager()
	ds := NewDiaryService(nil, &overrideManager{RepositoryManager: mem, tags: failingTags{errBoom}})

	_, err := ds.Save(context.Background(), "u1", DiaryInput{Title: "T", Content: "C", Tags: []string{"x"}})
	assert.ErrorIs(t, err, errBoom)

	list, _ := NewDiaryService(nil, mem).List(context.Background(), "u1", "")
	assert.Empty(t, list)
}

func TestList_NewestFirstAndTagFilter(t *testing.T) {
	_, _, ds := newMemoryServices(t)
	ctx := context.Background()

	a, _ := ds.Save(ctx, "u1", DiaryInput{Title: "a", Content: "c", Tags: []string{"work"}})
	b, _ := ds.Save(ctx, "u1", DiaryInput{Title: "b", Content: "c", Tags: []string{"Work"}})
	c, _ := ds.Save(ctx, "u1", DiaryInput{Title: "c", Content: "c", Tags: []string{"life", "work"}})
	_, _ = ds.Save(ctx, "u2", DiaryInput{Title: "x", Content: "c", Tags: []string{"work"}})

	all, err := ds.List(ctx, "u1", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{c, b, a}, []string{all[0].ID, all[1].ID, all[2].ID})

	work, err := ds.List(ctx, "u1", "work")
	require.NoError(t, err)
	require.Len(t, work, 2)
	assert.Equal(t, c, work[0].ID)
	assert.Equal(t, a, work[1].ID)

	none, err := ds.List(ctx, "u1", "wor")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate_ReplacesFieldsKeepsCreation(t *testing.T) {
	_, ts, ds := newMemoryServices(t)
	ctx := context.Background()

	id, _ := ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C", Mood: "M", Tags: []string{"a"}})
	before, _ := ds.List(ctx, "u1", "")

	require.NoError(t, ds.Update(ctx, "u1", id, DiaryInput{Title: "T2", Content: "C2", Tags: []string{"b"}}))

	after, _ := ds.List(ctx, "u1", "")
	require.Len(t, after, 1)
	assert.Equal(t, "T2", after[0].Title)
	assert.Equal(t, "", after[0].Mood)
	assert.Equal(t, []string{"b"}, after[0].Tags)
	assert.Equal(t, before[0].CreatedAt, after[0].CreatedAt)

	tags, _ := ts.List(ctx, "u1")
	assert.Len(t, tags, 2)
}

func TestUpdateRemove_OwnershipAndMissing(t *testing.T) {
	_, _, ds := newMemoryServices(t)
	ctx := context.Background()

	id, _ := ds.Save(ctx, "owner", DiaryInput{Title: "T", Content: "C"})

	err := ds.Update(ctx, "intruder", id, DiaryInput{Title: "X", Content: "X"})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, ds.Remove(ctx, "intruder", id), common.ErrorUnauthorized)

	list, _ := ds.List(ctx, "owner", "")
	require.Len(t, list, 1)
	assert.Equal(t, "T", list[0].Title)

	err = ds.Update(ctx, "owner", id, DiaryInput{Title: "T", Content: "C", Tags: []string{"1", "2", "3", "4"}})
	assert.ErrorIs(t, err, common.ErrTagLimitExceeded)

	require.NoError(t, ds.Remove(ctx, "owner", id))
	assert.ErrorIs(t, ds.Remove(ctx, "owner", id), common.ErrorNotFound)
	assert.ErrorIs(t, ds.Update(ctx, "owner", id, DiaryInput{Title: "T", Content: "C"}), common.ErrorNotFound)
}

func TestSave_ConcurrentTagEnsure(t *testing.T) {
	_, ts, ds := newMemoryServices(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C", Tags: []string{"shared"}})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	tags, _ := ts.List(ctx, "u1")
	assert.Len(t, tags, 1)
}

func newClockedDiaryService(clock *time.Time) *DiaryService {
	m := repomanager.NewMemoryRepositoryManager(memory.WithClock(func() time.Time { return *clock }))
	return NewDiaryService(nil, m)
}

func TestActivity_ZeroFilledOldestFirst(t *testing.T) {
	clock := time.Date(2025, 6, 8, 0, 0, 1, 0, time.UTC)
	ds := newClockedDiaryService(&clock)
	ctx := context.Background()

	_, err := ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C"})
	require.NoError(t, err)

	clock = time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C"})
		require.NoError(t, err)
	}

	now := time.Date(2025, 6, 10, 23, 59, 30, 0, time.UTC)
	days, err := ds.Activity(ctx, "u1", 7, now)
	require.NoError(t, err)
	require.Len(t, days, 7)

	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, today, days[6].Day)
	assert.Equal(t, today.AddDate(0, 0, -6), days[0].Day)

	counts := make([]int, len(days))
	for i, d := range days {
		counts[i] = d.Count
	}
	assert.Equal(t, []int{0, 0, 0, 0, 1, 0, 3}, counts)

	def, err := ds.Activity(ctx, "u1", 0, now)
	require.NoError(t, err)
	assert.Len(t, def, DefaultActivityDays)
}

func TestActivity_EntriesOutsideWindowIgnored(t *testing.T) {
	clock := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	ds := newClockedDiaryService(&clock)
	ctx := context.Background()

	_, err := ds.Save(ctx, "u1", DiaryInput{Title: "T", Content: "C"})
	require.NoError(t, err)

	days, err := ds.Activity(ctx, "u1", 2, clock.AddDate(0, 0, 10))
	require.NoError(t, err)
	for _, d := range days {
		assert.Zero(t, d.Count)
	}
}

func TestTagService_Ensure(t *testing.T) {
	_, ts, _ := newMemoryServices(t)
	ctx := context.Background()

	id1, err := ts.Ensure(ctx, "u1", "work")
	require.NoError(t, err)
	id2, err := ts.Ensure(ctx, "u1", "work")
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	other, err := ts.Ensure(ctx, "u2", "work")
	require.NoError(t, err)
	assert.NotEqual(t, id1, other)

	_, err = ts.Ensure(ctx, "u1", "  ")
	assert.ErrorIs(t, err, common.ErrorValidation)
}
