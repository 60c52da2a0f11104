package posts

import "context"

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post and fills in its ID and timestamp
	Create(ctx context.Context, post *Post) error

	// Count returns the total number of posts
	Count(ctx context.Context) (int, error)

	// ListWindow returns posts newest first (created_at DESC, id DESC)
	// with AuthorUsername joined from users
	ListWindow(ctx context.Context, offset, limit int) ([]*Post, error)
}

// Service defines the business logic interface for listing posts
type Service interface {
	// ListPosts returns one page of posts with comment counts and previews
	ListPosts(ctx context.Context, req PageRequest) (*Page, error)
}
