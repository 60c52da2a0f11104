package comments

import (
	"time"
)

// Comment represents a reply to a post in the Postfeed database
// Comments are created outside this core and are read-only here
type Comment struct {
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	Text           string    `json:"text" db:"text"`
	AuthorUsername string    `json:"authorUsername,omitempty" db:"-"`
	ID             int64     `json:"id" db:"id"`
	PostID         int64     `json:"postId" db:"post_id"`
	AuthorID       int64     `json:"authorId" db:"author_id"`
}
