package posts

import (
	"time"

	"Postfeed/internal/core/comments"
	"Postfeed/internal/core/users"
)

// Post represents a post in the Postfeed database
// The timestamp is set on insert and never changes
type Post struct {
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	Text           string    `json:"text" db:"text"`
	AuthorUsername string    `json:"authorUsername,omitempty" db:"-"`
	ID             int64     `json:"id" db:"id"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
}

// PostView is the serialized shape of a post in the list response
type PostView struct {
	ID             int64                   `json:"id"`
	Text           string                  `json:"text"`
	Timestamp      time.Time               `json:"timestamp"`
	Author         *users.AuthorView       `json:"author"`
	CommentCount   int                     `json:"comment_count"`
	LatestComments []*comments.CommentView `json:"latest_comments"`
}

// NewPostView builds the view of a post from its entity and comment preview
// A nil preview yields a zero count and an empty comment list
func NewPostView(p *Post, preview *comments.Preview) *PostView {
	view := &PostView{
		ID:             p.ID,
		Text:           p.Text,
		Timestamp:      p.CreatedAt,
		Author:         users.NewAuthorView(p.AuthorUsername),
		LatestComments: make([]*comments.CommentView, 0),
	}
	if preview != nil {
		view.CommentCount = preview.CommentCount
		if preview.LatestComments != nil {
			view.LatestComments = preview.LatestComments
		}
	}
	return view
}
