package traced

import (
	"context"

	"Postfeed/internal/core/posts"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type postRepo struct {
	wrapped posts.Repository
	rec     recorder
}

// NewPostRepository wraps a post repository with tracing
func NewPostRepository(wrapped posts.Repository, tp trace.TracerProvider) posts.Repository {
	return &postRepo{wrapped: wrapped, rec: newRecorder(tp)}
}

func (r *postRepo) Create(ctx context.Context, post *posts.Post) error {
	return r.rec.run(ctx, "CreatePost", func(ctx context.Context) error {
		return r.wrapped.Create(ctx, post)
	}, attribute.Int64("author.id", post.AuthorID))
}

func (r *postRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.rec.run(ctx, "CountPosts", func(ctx context.Context) error {
		var err error
		count, err = r.wrapped.Count(ctx)
		return err
	})
	return count, err
}

func (r *postRepo) ListWindow(ctx context.Context, offset, limit int) ([]*posts.Post, error) {
	var result []*posts.Post
	err := r.rec.run(ctx, "ListPostWindow", func(ctx context.Context) error {
		var err error
		result, err = r.wrapped.ListWindow(ctx, offset, limit)
		return err
	}, attribute.Int("window.offset", offset), attribute.Int("window.limit", limit))
	return result, err
}
