package comments

import (
	"sort"
)

// DefaultPreviewLimit is how many comments are shown inline with each post
const DefaultPreviewLimit = 3

// Order names a whitelisted ranking the store applies inside each post
type Order string

const (
	// OrderNewest ranks by created_at DESC, id DESC
	OrderNewest Order = "newest"

	// OrderRandom ranks by a uniform random key
	OrderRandom Order = "random"
)

// Policy names accepted by PolicyByName
const (
	PolicyLatest = "latest"
	PolicyRandom = "random"
)

// PreviewPolicy selects which comments of a post appear in its preview
// Order is pushed down to the store; Arrange is applied to each post's group
// after loading and must return at most Limit comments.
type PreviewPolicy interface {
	Name() string
	Order() Order
	Limit() int
	Arrange(group []*Comment) []*Comment
}

// PolicyByName returns the registered policy for name with the given limit
// An empty name selects the latest policy
func PolicyByName(name string, limit int) (PreviewPolicy, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}

	switch name {
	case "", PolicyLatest:
		return NewestFirst(limit), nil
	case PolicyRandom:
		return RandomSample(limit), nil
	default:
		return nil, &UnknownPolicyError{Name: name}
	}
}

type newestPolicy struct {
	limit int
}

// NewestFirst previews the most recent comments, newest first
func NewestFirst(limit int) PreviewPolicy {
	return newestPolicy{limit: limit}
}

func (p newestPolicy) Name() string { return PolicyLatest }
func (p newestPolicy) Order() Order { return OrderNewest }
func (p newestPolicy) Limit() int   { return p.limit }

func (p newestPolicy) Arrange(group []*Comment) []*Comment {
	sorted := make([]*Comment, len(group))
	copy(sorted, group)
	sort.SliceStable(sorted, func(i, j int) bool {
		return NewerThan(sorted[i], sorted[j])
	})
	return truncate(sorted, p.limit)
}

type randomPolicy struct {
	limit int
}

// RandomSample previews a uniform random sample of each post's comments
// The store draws the sample; the order it returns is kept
func RandomSample(limit int) PreviewPolicy {
	return randomPolicy{limit: limit}
}

func (p randomPolicy) Name() string { return PolicyRandom }
func (p randomPolicy) Order() Order { return OrderRandom }
func (p randomPolicy) Limit() int   { return p.limit }

func (p randomPolicy) Arrange(group []*Comment) []*Comment {
	return truncate(group, p.limit)
}

// NewerThan reports whether a sorts before b in display order:
// later timestamp first, later insertion (higher ID) first on ties
func NewerThan(a, b *Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func truncate(group []*Comment, limit int) []*Comment {
	if len(group) > limit {
		return group[:limit]
	}
	return group
}
