package services

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/dmitrijs2005/diarykeeper/internal/server/repositories/repomanager"
)

type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTagService constructs a TagService over the given database and repositories.
func NewTagService(db *sql.DB, m repomanager.RepositoryManager) *TagService {
	return &TagService{db: db, repomanager: m}
}

// List returns the caller's tags ordered by name.
func (s *TagService) List(ctx context.Context, userID string) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).ListByUser(ctx, userID)
}

// Ensure registers name for userID and returns its id.
func (s *TagService) Ensure(ctx context.Context, userID, name string) (string, error) {
	if err := validateTagName(name); err != nil {
		return "", err
	}
	return s.repomanager.Tags(s.db).Ensure(ctx, userID, name)
}

func validateTagName(name string) error {
	if strings.TrimSpace(name) == "" {
		return common.ErrorValidation
	}
	return nil
}
