package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"Postfeed/internal/core/users"
)

type postgresUserRepo struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) users.UserRepository {
	return &postgresUserRepo{db: db}
}

// Create inserts a new user into the users table
func (r *postgresUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	if err := users.ValidateUsername(user.Username); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO users (username)
		VALUES ($1)
		RETURNING id, username, created_at`

	err := r.db.QueryRowContext(ctx, query, user.Username).
		Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "users_username_key") {
			return nil, users.ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *postgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	user := &users.User{}
	query := `SELECT id, username, created_at FROM users WHERE username = $1`

	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// GetOrCreate returns the user with the given username, creating it when missing
// The no-op update makes RETURNING yield the existing row on conflict
func (r *postgresUserRepo) GetOrCreate(ctx context.Context, username string) (*users.User, error) {
	if err := users.ValidateUsername(username); err != nil {
		return nil, err
	}

	user := &users.User{}
	query := `
		INSERT INTO users (username)
		VALUES ($1)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id, username, created_at`

	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&user.ID, &user.Username, &user.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create user: %w", err)
	}

	return user, nil
}
