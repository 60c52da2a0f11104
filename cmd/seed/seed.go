package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"Postfeed/internal/core/comments"
	"Postfeed/internal/core/posts"
	"Postfeed/internal/core/users"
)

var usernames = []string{
	"sarah_jenkins", "michael_chen", "jessica_rodriguez", "david_nguyen",
	"emily_williams", "james_patel", "ashley_garcia", "robert_kim",
	"jennifer_lee", "william_martinez", "amanda_johnson", "daniel_brown",
	"melissa_davis", "christopher_wilson", "rebecca_anderson", "matthew_taylor",
}

var postTexts = []string{
	"Just finished reading a great book on distributed systems.",
	"Anyone else think the new subway schedule is worse?",
	"Weekend hike photos coming soon.",
	"Hot take: tabs are better than spaces.",
	"Looking for recommendations for a good ramen place downtown.",
	"Our community garden finally has tomatoes!",
	"Shipping a side project today, wish me luck.",
	"What is everyone listening to this week?",
}

var commentTexts = []string{
	"Totally agree with this.",
	"Not sure I follow, can you expand?",
	"This made my day.",
	"Interesting point, I had not thought of that.",
	"Same here!",
	"Strong disagree, but respect the take.",
	"Following for updates.",
	"Thanks for sharing.",
}

type seedOptions struct {
	Users       int
	Posts       int
	MaxComments int
	Seed        int64
	Span        time.Duration
}

type seedStats struct {
	Users    int
	Posts    int
	Comments int
}

type seeder struct {
	users    users.UserRepository
	posts    posts.Repository
	comments comments.Repository
	rng      *rand.Rand
	opts     seedOptions
	now      func() time.Time
}

func newSeeder(u users.UserRepository, p posts.Repository, c comments.Repository, opts seedOptions) *seeder {
	return &seeder{
		users:    u,
		posts:    p,
		comments: c,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		opts:     opts,
		now:      time.Now,
	}
}

// Run creates the users, then posts spread over opts.Span, then comments
// placed after their post and before now.
func (s *seeder) Run(ctx context.Context) (seedStats, error) {
	var stats seedStats

	if s.opts.Users < 1 {
		return stats, errors.New("at least one user is required")
	}
	if s.opts.Posts < 0 || s.opts.MaxComments < 0 {
		return stats, errors.New("posts and max-comments must not be negative")
	}

	authors := make([]*users.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		name := usernames[i%len(usernames)]
		if i >= len(usernames) {
			name = fmt.Sprintf("%s_%d", name, i/len(usernames))
		}
		u, err := s.users.GetOrCreate(ctx, name)
		if err != nil {
			return stats, fmt.Errorf("failed to create user %s: %w", name, err)
		}
		authors = append(authors, u)
		stats.Users++
	}

	now := s.now().UTC()
	span := s.opts.Span
	if span <= 0 {
		span = time.Hour
	}

	for i := 0; i < s.opts.Posts; i++ {
		post := &posts.Post{
			AuthorID:  authors[s.rng.Intn(len(authors))].ID,
			Text:      postTexts[s.rng.Intn(len(postTexts))],
			CreatedAt: now.Add(-time.Duration(s.rng.Int63n(int64(span)))),
		}
		if err := s.posts.Create(ctx, post); err != nil {
			return stats, fmt.Errorf("failed to create post: %w", err)
		}
		stats.Posts++

		n := 0
		if s.opts.MaxComments > 0 {
			n = s.rng.Intn(s.opts.MaxComments + 1)
		}
		for j := 0; j < n; j++ {
			age := now.Sub(post.CreatedAt)
			offset := time.Duration(0)
			if age > 0 {
				offset = time.Duration(s.rng.Int63n(int64(age)))
			}
			comment := &comments.Comment{
				PostID:    post.ID,
				AuthorID:  authors[s.rng.Intn(len(authors))].ID,
				Text:      commentTexts[s.rng.Intn(len(commentTexts))],
				CreatedAt: post.CreatedAt.Add(offset),
			}
			if err := s.comments.Create(ctx, comment); err != nil {
				return stats, fmt.Errorf("failed to create comment: %w", err)
			}
			stats.Comments++
		}
	}

	return stats, nil
}
