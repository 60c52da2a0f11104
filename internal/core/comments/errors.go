package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrContentEmpty indicates comment text is empty
	ErrContentEmpty = errors.New("comment text is required")

	// ErrPostNotFound indicates the referenced post doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrAuthorNotFound indicates the referenced author doesn't exist
	ErrAuthorNotFound = errors.New("author not found")
)

// UnknownPolicyError is returned when a preview policy name is not registered
type UnknownPolicyError struct {
	Name string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("unknown comment preview policy %q", e.Name)
}
