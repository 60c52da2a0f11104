package posts

import (
	"context"
	"fmt"
	"log/slog"

	"Postfeed/internal/core/comments"
)

type postService struct {
	repo        Repository
	previews    comments.PreviewLoader
	logger      *slog.Logger
	strictPages bool
}

// NewPostService creates a new post list service
// With strictPages a page past the last page fails with ErrPageNotFound
// instead of returning an empty page.
func NewPostService(repo Repository, previews comments.PreviewLoader, strictPages bool, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		repo:        repo,
		previews:    previews,
		strictPages: strictPages,
		logger:      logger,
	}
}

// ListPosts retrieves one page of posts, newest first
// Algorithm:
// 1. Validate request and apply defaults
// 2. Count all posts; a page past the last page returns empty (or ErrPageNotFound in strict mode)
// 3. Fetch the offset/limit window (author joined)
// 4. Load comment counts and previews for the whole window in one batch
// 5. Assemble views in window order
func (s *postService) ListPosts(ctx context.Context, req PageRequest) (*Page, error) {
	// 1. Validate request
	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}

	// 2. Total count drives next/previous and the last page
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, storeError("count posts", err)
	}

	lastPage := LastPage(total, req.PageSize)
	if req.Page > lastPage {
		if s.strictPages {
			return nil, fmt.Errorf("page %d of %d: %w", req.Page, lastPage, ErrPageNotFound)
		}
		// Nothing lies past the last page; skip the window and preview queries
		return &Page{
			Results:  []*PostView{},
			Count:    total,
			Number:   req.Page,
			Size:     req.PageSize,
			LastPage: lastPage,
		}, nil
	}

	// 3. Fetch window
	window := req.Window()
	posts, err := s.repo.ListWindow(ctx, window.Offset, window.Limit)
	if err != nil {
		return nil, storeError("list posts", err)
	}

	// 4. Batch load previews for the page (no-op for an empty window)
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	previews, err := s.previews.LoadPreviews(ctx, ids)
	if err != nil {
		return nil, storeError("load comment previews", err)
	}

	// 5. Build views
	results := make([]*PostView, 0, len(posts))
	for _, p := range posts {
		results = append(results, NewPostView(p, previews[p.ID]))
	}

	s.logger.DebugContext(ctx, "posts listed",
		slog.Int("page", req.Page),
		slog.Int("page_size", req.PageSize),
		slog.Int("count", total),
		slog.Int("results", len(results)),
	)

	return &Page{
		Results:  results,
		Count:    total,
		Number:   req.Page,
		Size:     req.PageSize,
		LastPage: lastPage,
	}, nil
}

// validateRequest validates the page request and applies defaults
func (s *postService) validateRequest(req *PageRequest) error {
	if req.Page < 0 {
		return NewValidationError("page", "page must be a positive integer")
	}
	if req.Page == 0 {
		req.Page = 1
	}

	if req.PageSize < 0 {
		return NewValidationError("page_size", "page_size must be a positive integer")
	}
	if req.PageSize == 0 {
		req.PageSize = DefaultPageSize
	}
	if req.PageSize > MaxPageSize {
		req.PageSize = MaxPageSize
	}

	return nil
}
