package traced

import (
	"context"

	"Postfeed/internal/core/comments"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type commentRepo struct {
	wrapped comments.Repository
	rec     recorder
}

// NewCommentRepository wraps a comment repository with tracing
func NewCommentRepository(wrapped comments.Repository, tp trace.TracerProvider) comments.Repository {
	return &commentRepo{wrapped: wrapped, rec: newRecorder(tp)}
}

func (r *commentRepo) Create(ctx context.Context, comment *comments.Comment) error {
	return r.rec.run(ctx, "CreateComment", func(ctx context.Context) error {
		return r.wrapped.Create(ctx, comment)
	}, attribute.Int64("post.id", comment.PostID))
}

func (r *commentRepo) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	var result map[int64]int
	err := r.rec.run(ctx, "CountCommentsByPosts", func(ctx context.Context) error {
		var err error
		result, err = r.wrapped.CountByPosts(ctx, postIDs)
		return err
	}, attribute.Int("batch.size", len(postIDs)))
	return result, err
}

func (r *commentRepo) ListRankedByPosts(ctx context.Context, postIDs []int64, order comments.Order, limitPerPost int) (map[int64][]*comments.Comment, error) {
	var result map[int64][]*comments.Comment
	err := r.rec.run(ctx, "ListRankedCommentsByPosts", func(ctx context.Context) error {
		var err error
		result, err = r.wrapped.ListRankedByPosts(ctx, postIDs, order, limitPerPost)
		return err
	},
		attribute.Int("batch.size", len(postIDs)),
		attribute.String("comments.order", string(order)),
		attribute.Int("comments.limit", limitPerPost),
	)
	return result, err
}
