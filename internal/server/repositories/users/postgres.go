package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/lib/pq"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a user repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user and returns it with generated fields populated.
// A duplicate account yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (account, salt, master_key_verifier)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, user.Account, user.Salt, user.Verifier).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// GetUserByAccount looks a user up by account name.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetUserByAccount(ctx context.Context, account string) (*models.User, error) {
	query := `
		SELECT id, account, salt, master_key_verifier, is_pro, subscription_end_time, created_at
		FROM users
		WHERE account = $1
	`
	user := &models.User{}
	var subEnd sql.NullTime
	err := r.db.QueryRowContext(ctx, query, account).Scan(
		&user.ID, &user.Account, &user.Salt, &user.Verifier, &user.IsPro, &subEnd, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if subEnd.Valid {
		t := subEnd.Time
		user.SubscriptionEndTime = &t
	}
	return user, nil
}

// isUniqueViolation recognizes duplicate-key errors from both lib/pq and
// drivers that expose the SQLSTATE through a SQLState method (pgx).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	var stateErr interface{ SQLState() string }
	if errors.As(err, &stateErr) {
		return stateErr.SQLState() == uniqueViolation
	}
	return false
}
