package diaries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diarykeeper/internal/common"
	"github.com/dmitrijs2005/diarykeeper/internal/dbx"
	"github.com/dmitrijs2005/diarykeeper/internal/server/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a diary repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts d and returns it with the id and created_at assigned by the
// database.
func (r *PostgresRepository) Create(ctx context.Context, d *models.Diary) (*models.Diary, error) {
	query := `
		INSERT INTO diaries (user_id, title, content, mood, tags)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		d.UserID, d.Title, d.Content, nullable(d.Mood), pq.Array(tagsOrEmpty(d.Tags)),
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// GetByID returns the diary with the given id.
// If not found, it returns common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Diary, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}
	query := `
		SELECT id, user_id, title, content, mood, tags, created_at
		FROM diaries
		WHERE id = $1
	`
	d, err := scanDiary(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

// Update replaces title, content, mood and tags of an existing diary.
// created_at is left untouched. Returns common.ErrorNotFound if no row matched.
func (r *PostgresRepository) Update(ctx context.Context, d *models.Diary) error {
	query := `
		UPDATE diaries
		SET title = $2, content = $3, mood = $4, tags = $5
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		d.ID, d.Title, d.Content, nullable(d.Mood), pq.Array(tagsOrEmpty(d.Tags)))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// Delete removes the diary by id, or returns common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM diaries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

// ListByUser returns all diaries owned by userID, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Diary, error) {
	query := `
		SELECT id, user_id, title, content, mood, tags, created_at
		FROM diaries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select diaries: %w", err)
	}
	defer rows.Close()

	var result []*models.Diary
	for rows.Next() {
		d, err := scanDiary(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDiary(s scanner) (*models.Diary, error) {
	var (
		d    models.Diary
		mood sql.NullString
		tags pq.StringArray
	)
	if err := s.Scan(&d.ID, &d.UserID, &d.Title, &d.Content, &mood, &tags, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Mood = mood.String
	d.Tags = []string(tags)
	return &d, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
