package users

import "context"

// UserRepository defines the interface for user data persistence
// The read path never calls it: author usernames are joined into post and
// comment queries. It backs seeding and test fixtures.
type UserRepository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetOrCreate returns the user with the given username, creating it when missing
	GetOrCreate(ctx context.Context, username string) (*User, error)
}
