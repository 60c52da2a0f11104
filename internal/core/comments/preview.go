package comments

import (
	"context"
	"fmt"
	"log/slog"
)

// MaxBatchSize bounds how many posts a single LoadPreviews call may cover
const MaxBatchSize = 1000

type previewLoader struct {
	repo   Repository
	policy PreviewPolicy
	logger *slog.Logger
}

// NewPreviewLoader creates a preview loader backed by the comment repository
// A nil policy defaults to the latest-3 policy
func NewPreviewLoader(repo Repository, policy PreviewPolicy, logger *slog.Logger) PreviewLoader {
	if policy == nil {
		policy = NewestFirst(DefaultPreviewLimit)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &previewLoader{
		repo:   repo,
		policy: policy,
		logger: logger,
	}
}

// LoadPreviews loads counts and previews for all posts with two batch queries
// Algorithm:
// 1. Deduplicate post IDs (no store calls for an empty batch)
// 2. One grouped count query for every post
// 3. One ranked query returning at most Limit comments per post
// 4. Arrange each group with the policy and build views
//
// Any store failure fails the whole batch.
func (l *previewLoader) LoadPreviews(ctx context.Context, postIDs []int64) (map[int64]*Preview, error) {
	ids := uniqueIDs(postIDs)
	result := make(map[int64]*Preview, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	if len(ids) > MaxBatchSize {
		return nil, fmt.Errorf("batch size %d exceeds maximum %d", len(ids), MaxBatchSize)
	}

	counts, err := l.repo.CountByPosts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	ranked, err := l.repo.ListRankedByPosts(ctx, ids, l.policy.Order(), l.policy.Limit())
	if err != nil {
		return nil, fmt.Errorf("failed to load comment previews: %w", err)
	}

	for _, id := range ids {
		preview := emptyPreview()
		preview.CommentCount = counts[id]

		for _, comment := range l.policy.Arrange(ranked[id]) {
			preview.LatestComments = append(preview.LatestComments, NewCommentView(comment))
		}

		// The two reads are separate statements; a comment written between
		// them must not leave the count below the number of comments shown.
		if preview.CommentCount < len(preview.LatestComments) {
			l.logger.DebugContext(ctx, "comment count raised to preview size",
				slog.Int64("post_id", id),
				slog.Int("count", preview.CommentCount),
				slog.Int("preview", len(preview.LatestComments)),
			)
			preview.CommentCount = len(preview.LatestComments)
		}

		result[id] = preview
	}

	l.logger.DebugContext(ctx, "comment previews loaded",
		slog.Int("posts", len(ids)),
		slog.String("policy", l.policy.Name()),
	)

	return result, nil
}

// uniqueIDs drops duplicates while keeping first-seen order
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
