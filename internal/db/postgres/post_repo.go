package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"Postfeed/internal/core/posts"
	"Postfeed/internal/core/users"
)

type postgresPostRepo struct {
	db *sql.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *sql.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post into the posts table
// A zero CreatedAt lets the database assign NOW()
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	if strings.TrimSpace(post.Text) == "" {
		return posts.ErrContentEmpty
	}

	query := `
		INSERT INTO posts (text, author_id, created_at)
		VALUES ($1, $2, COALESCE($3, NOW()))
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, post.Text, post.AuthorID, nullTime(post.CreatedAt)).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "posts_author_id_fkey") {
			return users.ErrUserNotFound
		}
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// Count returns the total number of posts
func (r *postgresPostRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ListWindow returns one offset/limit window of posts, newest first, with author usernames
// Uses idx_posts_created_at_id for the ordering
func (r *postgresPostRepo) ListWindow(ctx context.Context, offset, limit int) ([]*posts.Post, error) {
	if limit <= 0 {
		return []*posts.Post{}, nil
	}
	if offset < 0 {
		return nil, fmt.Errorf("invalid window offset %d", offset)
	}

	query := `
		SELECT p.id, p.author_id, p.text, p.created_at, u.username
		FROM posts p
		INNER JOIN users u ON p.author_id = u.id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := make([]*posts.Post, 0, limit)
	for rows.Next() {
		post := &posts.Post{}
		if err := rows.Scan(&post.ID, &post.AuthorID, &post.Text, &post.CreatedAt, &post.AuthorUsername); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		result = append(result, post)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}

	return result, nil
}

// nullTime maps the zero time to NULL so column defaults apply
func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
