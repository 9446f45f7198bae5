// Package tags is the per-user tag registry used for suggestions and filtering.
package tags

import (
	"context"

	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
)

type Repository interface {
	// Ensure makes sure (userID, name) exists and returns its id. Concurrent
	// calls for the same pair resolve to a single row.
	Ensure(ctx context.Context, userID, name string) (string, error)

	// ListByUser returns the user's tags ordered by name.
	ListByUser(ctx context.Context, userID string) ([]*models.Tag, error)
}
