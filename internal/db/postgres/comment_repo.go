package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"Postfeed/internal/core/comments"

	"github.com/lib/pq"
)

// commentOrderClauses whitelists the ORDER BY used inside each post partition
// Never interpolate anything that is not a key of this map
var commentOrderClauses = map[comments.Order]string{
	comments.OrderNewest: `c.created_at DESC, c.id DESC`,
	comments.OrderRandom: `random()`,
}

type postgresCommentRepo struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) comments.Repository {
	return &postgresCommentRepo{db: db}
}

// Create inserts a new comment into the comments table
// A zero CreatedAt lets the database assign NOW()
func (r *postgresCommentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	if strings.TrimSpace(comment.Text) == "" {
		return comments.ErrContentEmpty
	}

	query := `
		INSERT INTO comments (text, author_id, post_id, created_at)
		VALUES ($1, $2, $3, COALESCE($4, NOW()))
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		comment.Text, comment.AuthorID, comment.PostID, nullTime(comment.CreatedAt),
	).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "comments_post_id_fkey"):
			return comments.ErrPostNotFound
		case strings.Contains(err.Error(), "comments_author_id_fkey"):
			return comments.ErrAuthorNotFound
		}
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// CountByPosts counts comments for many posts with one grouped query
// Posts with no comments are not present in the map
func (r *postgresCommentRepo) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	if len(postIDs) == 0 {
		return make(map[int64]int), nil
	}
	if len(postIDs) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(postIDs), MaxBatchSize)
	}

	query := `
		SELECT post_id, COUNT(*)
		FROM comments
		WHERE post_id = ANY($1)
		GROUP BY post_id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to count comments by posts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := make(map[int64]int, len(postIDs))
	for rows.Next() {
		var postID int64
		var count int
		if err := rows.Scan(&postID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan comment count: %w", err)
		}
		result[postID] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment counts: %w", err)
	}

	return result, nil
}

// ListRankedByPosts returns the top limitPerPost comments of each post in one query
// ROW_NUMBER over a post_id partition bounds each group server side, so the
// result size is at most len(postIDs)*limitPerPost however many comments exist.
// Rows come back grouped by post and in rank order.
func (r *postgresCommentRepo) ListRankedByPosts(
	ctx context.Context,
	postIDs []int64,
	order comments.Order,
	limitPerPost int,
) (map[int64][]*comments.Comment, error) {
	if len(postIDs) == 0 || limitPerPost <= 0 {
		return make(map[int64][]*comments.Comment), nil
	}
	if len(postIDs) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(postIDs), MaxBatchSize)
	}

	orderBy, ok := commentOrderClauses[order]
	if !ok {
		return nil, fmt.Errorf("unsupported comment order %q", order)
	}

	query := fmt.Sprintf(`
		SELECT id, post_id, author_id, text, created_at, author_username
		FROM (
			SELECT
				c.id, c.post_id, c.author_id, c.text, c.created_at,
				u.username AS author_username,
				ROW_NUMBER() OVER (PARTITION BY c.post_id ORDER BY %s) AS rn
			FROM comments c
			INNER JOIN users u ON c.author_id = u.id
			WHERE c.post_id = ANY($1)
		) ranked
		WHERE rn <= $2
		ORDER BY post_id, rn`, orderBy)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(postIDs), limitPerPost)
	if err != nil {
		return nil, fmt.Errorf("failed to list ranked comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	result := make(map[int64][]*comments.Comment, len(postIDs))
	for rows.Next() {
		comment := &comments.Comment{}
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.AuthorID,
			&comment.Text, &comment.CreatedAt, &comment.AuthorUsername,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		result[comment.PostID] = append(result[comment.PostID], comment)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return result, nil
}
