package comments

import (
	"time"

	"Postfeed/internal/core/users"
)

// CommentView is the serialized shape of a comment inside a post preview
type CommentView struct {
	Timestamp time.Time         `json:"timestamp"`
	Author    *users.AuthorView `json:"author"`
	Text      string            `json:"text"`
	ID        int64             `json:"id"`
}

// Preview is the per-post result of the preview loader
// LatestComments is never nil so it serializes as [] for posts without comments
type Preview struct {
	LatestComments []*CommentView `json:"latest_comments"`
	CommentCount   int            `json:"comment_count"`
}

// NewCommentView converts a Comment entity to its API view
func NewCommentView(c *Comment) *CommentView {
	return &CommentView{
		ID:        c.ID,
		Text:      c.Text,
		Timestamp: c.CreatedAt,
		Author:    users.NewAuthorView(c.AuthorUsername),
	}
}

// emptyPreview is the preview of a post with no comments
func emptyPreview() *Preview {
	return &Preview{
		LatestComments: make([]*CommentView, 0),
		CommentCount:   0,
	}
}
