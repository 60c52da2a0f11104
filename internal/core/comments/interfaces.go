package comments

import "context"

// Repository defines the data access interface for comments
//
// The read path only uses the two batch methods; both take the full set of
// post IDs for a page so the number of round-trips does not grow with the
// page size.
type Repository interface {
	// Create inserts a new comment
	// Used by seeding and test fixtures; the HTTP API exposes no write path
	Create(ctx context.Context, comment *Comment) error

	// CountByPosts counts comments per post in a single grouped query
	// Posts without comments are absent from the returned map
	CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error)

	// ListRankedByPosts returns at most limitPerPost comments for each post,
	// ranked inside each post by the given order, in a single query.
	// Comments carry their author's username.
	// Posts without comments are absent from the returned map
	ListRankedByPosts(ctx context.Context, postIDs []int64, order Order, limitPerPost int) (map[int64][]*Comment, error)
}

// PreviewLoader computes comment counts and bounded comment previews for a batch of posts
type PreviewLoader interface {
	// LoadPreviews returns one Preview for every requested post ID,
	// including posts without comments
	LoadPreviews(ctx context.Context, postIDs []int64) (map[int64]*Preview, error)
}
