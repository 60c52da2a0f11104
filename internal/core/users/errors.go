package users

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when creating a user whose username already exists
	ErrUsernameTaken = errors.New("username already taken")
)

// maxUsernameLength matches the users.username column constraint
const maxUsernameLength = 150

// InvalidUsernameError is returned when a username does not meet format requirements
type InvalidUsernameError struct {
	Username string
	Reason   string
}

func (e *InvalidUsernameError) Error() string {
	return fmt.Sprintf("invalid username %q: %s", e.Username, e.Reason)
}

// ValidateUsername checks a username before it is written to the store
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return &InvalidUsernameError{Username: username, Reason: "must not be empty"}
	}
	if len(username) > maxUsernameLength {
		return &InvalidUsernameError{Username: username, Reason: fmt.Sprintf("must be at most %d characters", maxUsernameLength)}
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return &InvalidUsernameError{Username: username, Reason: "must not contain whitespace"}
	}
	return nil
}
