// Package diaries stores journal entries. Title, content and mood arrive
// already encrypted and are persisted as opaque text.
package diaries

import (
	"context"

	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
)

type Repository interface {
	// Create inserts d and fills in ID and CreatedAt.
	Create(ctx context.Context, d *models.Diary) (*models.Diary, error)

	// GetByID returns common.ErrorNotFound for unknown or malformed ids.
	GetByID(ctx context.Context, id string) (*models.Diary, error)

	// Update overwrites title, content, mood and tags of d.ID. CreatedAt and
	// the owner never change.
	Update(ctx context.Context, d *models.Diary) error

	// Delete returns common.ErrorNotFound when nothing was removed.
	Delete(ctx context.Context, id string) error

	// ListByUser returns the user's entries, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Diary, error)
}
