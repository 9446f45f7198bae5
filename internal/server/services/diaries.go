package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/diarykeeper/internal/timex"
)

// DefaultActivityDays is the window used by Activity when days <= 0.
const DefaultActivityDays = 365

// DiaryInput is the caller-supplied part of an entry. Title, Content and
// Mood are ciphertexts; Mood may be empty.
type DiaryInput struct {
	Title   string
	Content string
	Mood    string
	Tags    []string
}

// DayActivity counts the entries created on Day (UTC midnight).
type DayActivity struct {
	Day   time.Time
	Count int
}

type DiaryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewDiaryService constructs a DiaryService. A nil db runs writes without a
// transaction, which is how the in-memory repositories are used.
func NewDiaryService(db *sql.DB, m repomanager.RepositoryManager) *DiaryService {
	return &DiaryService{db: db, repomanager: m}
}

// normalize validates in and returns its tags deduplicated in first-seen order.
func (in DiaryInput) normalize() ([]string, error) {
	if in.Title == "" || in.Content == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrorValidation)
	}
	tags := common.UniqueStrings(in.Tags)
	if len(tags) > common.MaxTagsPerDiary {
		return nil, common.ErrTagLimitExceeded
	}
	for _, t := range tags {
		if err := validateTagName(t); err != nil {
			return nil, fmt.Errorf("%w: empty tag", err)
		}
	}
	return tags, nil
}

// Save creates an entry owned by userID and registers its tags.
func (s *DiaryService) Save(ctx context.Context, userID string, in DiaryInput) (string, error) {
	tags, err := in.normalize()
	if err != nil {
		return "", err
	}

	d := &models.Diary{
		UserID:  userID,
		Title:   in.Title,
		Content: in.Content,
		Mood:    in.Mood,
		Tags:    tags,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.ensureTags(ctx, tx, userID, tags); err != nil {
			return err
		}
		_, err := s.repomanager.Diaries(tx).Create(ctx, d)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("error saving diary: %w", err)
	}
	return d.ID, nil
}

// Update replaces title, content, mood and tags of entry id.
func (s *DiaryService) Update(ctx context.Context, userID, id string, in DiaryInput) error {
	tags, err := in.normalize()
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		cur, err := s.owned(ctx, tx, userID, id)
		if err != nil {
			return err
		}
		if err := s.ensureTags(ctx, tx, cur.UserID, tags); err != nil {
			return err
		}
		cur.Title, cur.Content, cur.Mood, cur.Tags = in.Title, in.Content, in.Mood, tags
		return s.repomanager.Diaries(tx).Update(ctx, cur)
	})
}

// Remove deletes entry id. A missing entry yields common.ErrorNotFound.
func (s *DiaryService) Remove(ctx context.Context, userID, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.owned(ctx, tx, userID, id); err != nil {
			return err
		}
		return s.repomanager.Diaries(tx).Delete(ctx, id)
	})
}

// List returns the caller's entries newest first, restricted to those
// carrying tag when tag is non-empty.
func (s *DiaryService) List(ctx context.Context, userID, tag string) ([]*models.Diary, error) {
	all, err := s.repomanager.Diaries(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing diaries: %w", err)
	}
	if tag == "" {
		return all, nil
	}
	result := make([]*models.Diary, 0, len(all))
	for _, d := range all {
		if d.HasTag(tag) {
			result = append(result, d)
		}
	}
	return result, nil
}

// Activity returns one bucket per UTC day for the last days days ending on
// now's day, oldest first, with zero counts for days without entries.
func (s *DiaryService) Activity(ctx context.Context, userID string, days int, now time.Time) ([]DayActivity, error) {
	if days <= 0 {
		days = DefaultActivityDays
	}
	all, err := s.List(ctx, userID, "")
	if err != nil {
		return nil, err
	}

	today := timex.StartOfDay(now.UTC())
	first := today.AddDate(0, 0, -(days - 1))

	result := make([]DayActivity, days)
	index := make(map[time.Time]int, days)
	for i := range result {
		day := first.AddDate(0, 0, i)
		result[i].Day = day
		index[day] = i
	}
	for _, d := range all {
		if i, ok := index[timex.StartOfDay(d.CreatedAt.UTC())]; ok {
			result[i].Count++
		}
	}
	return result, nil
}

func (s *DiaryService) owned(ctx context.Context, tx dbx.DBTX, userID, id string) (*models.Diary, error) {
	cur, err := s.repomanager.Diaries(tx).GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.UserID != userID {
		return nil, common.ErrorUnauthorized
	}
	return cur, nil
}

func (s *DiaryService) ensureTags(ctx context.Context, tx dbx.DBTX, userID string, tags []string) error {
	repo := s.repomanager.Tags(tx)
	for _, t := range tags {
		if _, err := repo.Ensure(ctx, userID, t); err != nil {
			return fmt.Errorf("error ensuring tag %q: %w", t, err)
		}
	}
	return nil
}
