// Package users declares the account store used by the authentication flow.
package users

import (
	"context"

	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
)

// Repository persists accounts keyed by their unique account string.
type Repository interface {
	// Create inserts user and fills in ID and CreatedAt. A duplicate account
	// yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetUserByAccount returns common.ErrorNotFound when no such account exists.
	GetUserByAccount(ctx context.Context, account string) (*models.User, error)
}
