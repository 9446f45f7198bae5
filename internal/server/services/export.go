package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/google/uuid"
)

// ExportURLValidity bounds how long a download link stays usable.
const ExportURLValidity = 15 * time.Minute

// ExportDocument is the uploaded archive. Entry fields stay encrypted; only
// the owner's session key can read them.
type ExportDocument struct {
	UserID     string          `json:"user_id"`
	ExportedAt time.Time       `json:"exported_at"`
	Entries    []ExportedDiary `json:"entries"`
}

type ExportedDiary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      string    `json:"mood,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportService struct {
	diaries *DiaryService
	store   ObjectStore
	now     func() time.Time
}

// NewExportService constructs an ExportService reading through diaries and
// uploading to store.
func NewExportService(diaries *DiaryService, store ObjectStore) *ExportService {
	return &ExportService{diaries: diaries, store: store, now: time.Now}
}

func exportKey(userID string, t time.Time) string {
	return fmt.Sprintf("exports/%s/%04d/%02d/%02d/%s.json", userID, t.Year(), t.Month(), t.Day(), uuid.New())
}

// Export uploads all of userID's entries and returns the object key and a
// presigned download URL.
func (s *ExportService) Export(ctx context.Context, userID string) (string, string, error) {
	list, err := s.diaries.List(ctx, userID, "")
	if err != nil {
		return "", "", err
	}

	now := s.now().UTC()
	doc := ExportDocument{UserID: userID, ExportedAt: now, Entries: make([]ExportedDiary, 0, len(list))}
	for _, d := range list {
		doc.Entries = append(doc.Entries, toExported(d))
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", "", fmt.Errorf("error encoding export: %w", err)
	}

	key := exportKey(userID, now)
	if err := s.store.Put(ctx, key, "application/json", body); err != nil {
		return "", "", fmt.Errorf("error uploading export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, ExportURLValidity)
	if err != nil {
		return "", "", fmt.Errorf("error presigning export: %w", err)
	}
	return key, url, nil
}

func toExported(d *models.Diary) ExportedDiary {
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	return ExportedDiary{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Mood:      d.Mood,
		Tags:      tags,
		CreatedAt: d.CreatedAt,
	}
}
