package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/client/client"
	"github.com/dmitrijs2005/diarykeeper/internal/client/models"
	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/cryptox"
	"github.com/dmitrijs2005/diarykeeper/internal/filex"
	"github.com/dmitrijs2005/diarykeeper/internal/logging"
	"github.com/dmitrijs2005/diarykeeper/internal/netx"
	"github.com/dmitrijs2005/diarykeeper/internal/rpc"
)

// DiaryService is the CLI's view of the diary. Every call that touches
// entry text takes the session key explicitly; entries leave the process
// encrypted and are decrypted on the way back.
type DiaryService interface {
	Save(ctx context.Context, key string, d models.Draft) (string, error)
	Update(ctx context.Context, key, id string, d models.Draft) error
	Remove(ctx context.Context, id string) error
	List(ctx context.Context, key, tag string) ([]models.Diary, error)
	Tags(ctx context.Context) ([]models.Tag, error)
	Activity(ctx context.Context, days int) ([]models.DayActivity, error)
	Export(ctx context.Context, dir string) (string, error)
}

type diaryService struct {
	client client.Client
	logger logging.Logger
}

func NewDiaryService(client client.Client, logger logging.Logger) DiaryService {
	return &diaryService{client: client, logger: logger.With("module", "diaries")}
}

type sealedDraft struct {
	title, content, mood string
	tags                 []string
}

// seal checks d the way the server will and encrypts its text fields. Mood is
// encrypted only when set so that "no mood" stays empty on the server.
func seal(key string, d models.Draft) (*sealedDraft, error) {
	if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", common.ErrorValidation)
	}

	var tags []string
	for _, t := range d.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	tags = common.UniqueStrings(tags)
	if len(tags) > common.MaxTagsPerDiary {
		return nil, common.ErrTagLimitExceeded
	}

	s := &sealedDraft{
		title:   cryptox.Encrypt(d.Title, key),
		content: cryptox.Encrypt(d.Content, key),
		tags:    tags,
	}
	if d.Mood != "" {
		s.mood = cryptox.Encrypt(d.Mood, key)
	}
	return s, nil
}

func (s *diaryService) Save(ctx context.Context, key string, d models.Draft) (string, error) {
	sealed, err := seal(key, d)
	if err != nil {
		return "", err
	}

	id, err := s.client.SaveDiary(ctx, &rpc.SaveDiaryRequest{
		Title:   sealed.title,
		Content: sealed.content,
		Mood:    sealed.mood,
		Tags:    sealed.tags,
	})
	if err != nil {
		return "", fmt.Errorf("save diary: %w", err)
	}
	return id, nil
}

func (s *diaryService) Update(ctx context.Context, key, id string, d models.Draft) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}
	sealed, err := seal(key, d)
	if err != nil {
		return err
	}

	err = s.client.UpdateDiary(ctx, &rpc.UpdateDiaryRequest{
		ID:      id,
		Title:   sealed.title,
		Content: sealed.content,
		Mood:    sealed.mood,
		Tags:    sealed.tags,
	})
	if err != nil {
		return fmt.Errorf("update diary: %w", err)
	}
	return nil
}

// Remove deletes the entry. An entry that is already gone counts as removed.
func (s *diaryService) Remove(ctx context.Context, id string) error {
	err := s.client.RemoveDiary(ctx, id)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("remove diary: %w", err)
	}
	return nil
}

// List returns the caller's entries, newest first, optionally only those
// carrying tag. Fields that do not decrypt under key are returned as stored.
func (s *diaryService) List(ctx context.Context, key, tag string) ([]models.Diary, error) {
	rows, err := s.client.ListDiaries(ctx, strings.TrimSpace(tag))
	if err != nil {
		return nil, fmt.Errorf("list diaries: %w", err)
	}

	result := make([]models.Diary, 0, len(rows))
	for _, r := range rows {
		result = append(result, models.Diary{
			ID:        r.ID,
			Title:     cryptox.Decrypt(r.Title, key),
			Content:   cryptox.Decrypt(r.Content, key),
			Mood:      cryptox.DecryptMood(r.Mood, key),
			Tags:      r.Tags,
			CreatedAt: r.CreatedAt,
		})
	}
	return result, nil
}

func (s *diaryService) Tags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.client.ListTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	result := make([]models.Tag, 0, len(rows))
	for _, r := range rows {
		result = append(result, models.Tag{ID: r.ID, Name: r.Name})
	}
	return result, nil
}

// Activity returns per-day entry counts for the last days days, oldest first.
func (s *diaryService) Activity(ctx context.Context, days int) ([]models.DayActivity, error) {
	rows, err := s.client.Activity(ctx, days)
	if err != nil {
		return nil, fmt.Errorf("activity: %w", err)
	}

	result := make([]models.DayActivity, 0, len(rows))
	for _, r := range rows {
		day, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return nil, fmt.Errorf("activity: bad date %q: %w", r.Date, err)
		}
		result = append(result, models.DayActivity{Day: day, Count: r.Count})
	}
	return result, nil
}

// Export asks the server for an export of all entries and downloads it into
// dir. The file keeps the entries encrypted. It returns the local path.
func (s *diaryService) Export(ctx context.Context, dir string) (string, error) {
	key, url, err := s.client.Export(ctx)
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}

	target, err := filex.EnsureSubdDir(dir)
	if err != nil {
		return "", err
	}

	name := path.Base(key)
	if name == "." || name == "/" {
		name = "export.json"
	}
	dst := filepath.Join(target, name)

	var size int64
	err = filex.WriteAtomic(dst, func(w io.Writer) error {
		n, err := netx.DownloadPresignedURL(ctx, url, w)
		size = n
		return err
	})
	if err != nil {
		return "", fmt.Errorf("export download: %w", err)
	}

	s.logger.Info(ctx, "export downloaded", "key", key, "path", dst, "bytes", size)
	return dst, nil
}
