package users

import (
	"time"
)

// User represents an account known to the Postfeed store
// Accounts are owned by the identity subsystem; this core only reads them
type User struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Username  string    `json:"username" db:"username"`
	ID        int64     `json:"id" db:"id"`
}

// AuthorView is the public projection of a user inside post and comment views
// Only the username is exposed to API clients
type AuthorView struct {
	Username string `json:"username"`
}

// NewAuthorView builds the author projection for a username
func NewAuthorView(username string) *AuthorView {
	return &AuthorView{Username: username}
}
