package posts

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"Postfeed/internal/core/comments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockPostRepo keeps posts newest first in memory
type mockPostRepo struct {
	countFunc      func(ctx context.Context) (int, error)
	listWindowFunc func(ctx context.Context, offset, limit int) ([]*Post, error)
	posts          []*Post
	countCalls     int
	windowCalls    int
}

func (m *mockPostRepo) Create(ctx context.Context, post *Post) error {
	post.ID = int64(len(m.posts) + 1)
	// Prepend so the newest post comes first
	m.posts = append([]*Post{post}, m.posts...)
	return nil
}

func (m *mockPostRepo) Count(ctx context.Context) (int, error) {
	m.countCalls++
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return len(m.posts), nil
}

func (m *mockPostRepo) ListWindow(ctx context.Context, offset, limit int) ([]*Post, error) {
	m.windowCalls++
	if m.listWindowFunc != nil {
		return m.listWindowFunc(ctx, offset, limit)
	}
	if offset >= len(m.posts) {
		return []*Post{}, nil
	}
	end := offset + limit
	if end > len(m.posts) {
		end = len(m.posts)
	}
	return m.posts[offset:end], nil
}

// mockPreviewLoader records calls with testify mock
type mockPreviewLoader struct {
	mock.Mock
}

func (m *mockPreviewLoader) LoadPreviews(ctx context.Context, postIDs []int64) (map[int64]*comments.Preview, error) {
	args := m.Called(ctx, postIDs)
	if v := args.Get(0); v != nil {
		return v.(map[int64]*comments.Preview), args.Error(1)
	}
	return nil, args.Error(1)
}

// memCommentRepo backs the real preview loader in scenario tests
type memCommentRepo struct {
	comments []*comments.Comment
	calls    int
}

func (m *memCommentRepo) Create(ctx context.Context, c *comments.Comment) error {
	c.ID = int64(len(m.comments) + 1)
	m.comments = append(m.comments, c)
	return nil
}

func (m *memCommentRepo) CountByPosts(ctx context.Context, postIDs []int64) (map[int64]int, error) {
	m.calls++
	counts := make(map[int64]int)
	for _, c := range m.comments {
		counts[c.PostID]++
	}
	return counts, nil
}

func (m *memCommentRepo) ListRankedByPosts(ctx context.Context, postIDs []int64, order comments.Order, limitPerPost int) (map[int64][]*comments.Comment, error) {
	m.calls++
	grouped := make(map[int64][]*comments.Comment)
	for _, c := range m.comments {
		grouped[c.PostID] = append(grouped[c.PostID], c)
	}
	return grouped, nil
}

var t0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newPost(t *testing.T, repo *mockPostRepo, text, author string, at time.Time) *Post {
	t.Helper()
	p := &Post{Text: text, AuthorUsername: author, CreatedAt: at}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func newComment(t *testing.T, repo *memCommentRepo, postID int64, text string, at time.Time) *comments.Comment {
	t.Helper()
	c := &comments.Comment{PostID: postID, Text: text, AuthorUsername: "carol", CreatedAt: at}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestListPosts_ScenarioAB(t *testing.T) {
	postRepo := &mockPostRepo{}
	commentRepo := &memCommentRepo{}

	b := newPost(t, postRepo, "post B", "bob", t0)
	a := newPost(t, postRepo, "post A", "alice", t0.Add(time.Hour))

	newComment(t, commentRepo, a.ID, "C1", t0.Add(61*time.Minute))
	c2 := newComment(t, commentRepo, a.ID, "C2", t0.Add(62*time.Minute))
	c3 := newComment(t, commentRepo, a.ID, "C3", t0.Add(63*time.Minute))
	c4 := newComment(t, commentRepo, a.ID, "C4", t0.Add(64*time.Minute))
	cb := newComment(t, commentRepo, b.ID, "only", t0.Add(time.Minute))

	svc := NewPostService(postRepo, comments.NewPreviewLoader(commentRepo, nil, nil), false, nil)
	page, err := svc.ListPosts(context.Background(), PageRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, DefaultPageSize, page.Size)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrevious())
	require.Len(t, page.Results, 2)

	first := page.Results[0]
	assert.Equal(t, a.ID, first.ID)
	assert.Equal(t, "alice", first.Author.Username)
	assert.Equal(t, 4, first.CommentCount)
	require.Len(t, first.LatestComments, 3)
	assert.Equal(t, c4.ID, first.LatestComments[0].ID)
	assert.Equal(t, c3.ID, first.LatestComments[1].ID)
	assert.Equal(t, c2.ID, first.LatestComments[2].ID)

	second := page.Results[1]
	assert.Equal(t, b.ID, second.ID)
	assert.Equal(t, 1, second.CommentCount)
	require.Len(t, second.LatestComments, 1)
	assert.Equal(t, cb.ID, second.LatestComments[0].ID)

	// 4 round-trips: count, window, grouped count, ranked previews
	assert.Equal(t, 1, postRepo.countCalls)
	assert.Equal(t, 1, postRepo.windowCalls)
	assert.Equal(t, 2, commentRepo.calls)
}

func TestListPosts_PageSizeOne(t *testing.T) {
	postRepo := &mockPostRepo{}
	older := newPost(t, postRepo, "older", "bob", t0)
	newer := newPost(t, postRepo, "newer", "alice", t0.Add(time.Minute))

	svc := NewPostService(postRepo, comments.NewPreviewLoader(&memCommentRepo{}, nil, nil), false, nil)

	page1, err := svc.ListPosts(context.Background(), PageRequest{Page: 1, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, page1.Results, 1)
	assert.Equal(t, newer.ID, page1.Results[0].ID)
	assert.True(t, page1.HasNext())
	assert.False(t, page1.HasPrevious())

	page2, err := svc.ListPosts(context.Background(), PageRequest{Page: 2, PageSize: 1})
	require.NoError(t, err)
	require.Len(t, page2.Results, 1)
	assert.Equal(t, older.ID, page2.Results[0].ID)
	assert.False(t, page2.HasNext())
	assert.True(t, page2.HasPrevious())
	assert.Equal(t, 1, page2.PreviousNumber())
}

func TestListPosts_ZeroComments(t *testing.T) {
	postRepo := &mockPostRepo{}
	newPost(t, postRepo, "quiet", "dave", t0)

	svc := NewPostService(postRepo, comments.NewPreviewLoader(&memCommentRepo{}, nil, nil), false, nil)
	page, err := svc.ListPosts(context.Background(), PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, 0, page.Results[0].CommentCount)
	assert.NotNil(t, page.Results[0].LatestComments)
	assert.Empty(t, page.Results[0].LatestComments)
}

func TestListPosts_ClampsPageSize(t *testing.T) {
	postRepo := &mockPostRepo{}
	for i := 0; i < 120; i++ {
		newPost(t, postRepo, "post", "erin", t0.Add(time.Duration(i)*time.Second))
	}

	svc := NewPostService(postRepo, comments.NewPreviewLoader(&memCommentRepo{}, nil, nil), false, nil)
	page, err := svc.ListPosts(context.Background(), PageRequest{PageSize: 1000})
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.Size)
	assert.Len(t, page.Results, MaxPageSize)
	assert.Equal(t, 120, page.Count)
	assert.True(t, page.HasNext())
}

func TestListPosts_PastTheEnd(t *testing.T) {
	postRepo := &mockPostRepo{}
	newPost(t, postRepo, "one", "alice", t0)
	newPost(t, postRepo, "two", "alice", t0.Add(time.Second))

	loader := &mockPreviewLoader{}
	loader.On("LoadPreviews", mock.Anything, []int64{}).Return(map[int64]*comments.Preview{}, nil)

	t.Run("empty page by default", func(t *testing.T) {
		svc := NewPostService(postRepo, loader, false, nil)
		page, err := svc.ListPosts(context.Background(), PageRequest{Page: 5, PageSize: 1})
		require.NoError(t, err)
		assert.Empty(t, page.Results)
		assert.Equal(t, 2, page.Count)
		assert.False(t, page.HasNext())
		assert.True(t, page.HasPrevious())
		assert.Equal(t, 2, page.PreviousNumber())
		assert.Equal(t, 0, postRepo.windowCalls)
		loader.AssertNotCalled(t, "LoadPreviews", mock.Anything, mock.Anything)
	})

	t.Run("not found in strict mode", func(t *testing.T) {
		svc := NewPostService(postRepo, loader, true, nil)
		_, err := svc.ListPosts(context.Background(), PageRequest{Page: 5, PageSize: 1})
		require.Error(t, err)
		assert.True(t, IsNotFound(err))
	})

	t.Run("strict mode allows empty first page", func(t *testing.T) {
		svc := NewPostService(&mockPostRepo{}, loader, true, nil)
		page, err := svc.ListPosts(context.Background(), PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)
		assert.Empty(t, page.Results)
		assert.False(t, page.HasPrevious())
	})
}

func TestListPosts_HugePageNumber(t *testing.T) {
	postRepo := &mockPostRepo{}
	newPost(t, postRepo, "only", "alice", t0)
	svc := NewPostService(postRepo, comments.NewPreviewLoader(&memCommentRepo{}, nil, nil), false, nil)

	// (page-1)*page_size would wrap negative for these values
	for _, raw := range []string{"922337203685477582", "99999999999999999999"} {
		t.Run(raw, func(t *testing.T) {
			req, err := ParsePageRequest(raw, "10")
			require.NoError(t, err)

			page, err := svc.ListPosts(context.Background(), req)
			require.NoError(t, err)
			assert.Empty(t, page.Results)
			assert.Equal(t, 1, page.Count)
			assert.False(t, page.HasNext())
			assert.True(t, page.HasPrevious())
			assert.Equal(t, 1, page.PreviousNumber())
			assert.Equal(t, 0, postRepo.windowCalls)
		})
	}
}

func TestListPosts_OverflowingPageSizeClamped(t *testing.T) {
	postRepo := &mockPostRepo{}
	newPost(t, postRepo, "one", "alice", t0)
	newPost(t, postRepo, "two", "alice", t0.Add(time.Second))
	svc := NewPostService(postRepo, comments.NewPreviewLoader(&memCommentRepo{}, nil, nil), false, nil)

	req, err := ParsePageRequest("", "99999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, req.PageSize)

	page, err := svc.ListPosts(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, page.Size)
	assert.Len(t, page.Results, 2)
}

func TestListPosts_LoadsPreviewsOncePerPage(t *testing.T) {
	postRepo := &mockPostRepo{}
	for i := 0; i < 3; i++ {
		newPost(t, postRepo, "post", "frank", t0.Add(time.Duration(i)*time.Minute))
	}

	loader := &mockPreviewLoader{}
	loader.On("LoadPreviews", mock.Anything, []int64{3, 2, 1}).Return(map[int64]*comments.Preview{
		2: {CommentCount: 7, LatestComments: []*comments.CommentView{{ID: 70}}},
	}, nil).Once()

	svc := NewPostService(postRepo, loader, false, nil)
	page, err := svc.ListPosts(context.Background(), PageRequest{})
	require.NoError(t, err)
	loader.AssertExpectations(t)

	require.Len(t, page.Results, 3)
	assert.Equal(t, 0, page.Results[0].CommentCount)
	assert.Equal(t, 7, page.Results[1].CommentCount)
	assert.Equal(t, int64(70), page.Results[1].LatestComments[0].ID)
	assert.NotNil(t, page.Results[2].LatestComments)
}

func TestListPosts_StoreErrors(t *testing.T) {
	storeErr := errors.New("connection reset by peer")

	t.Run("count", func(t *testing.T) {
		repo := &mockPostRepo{countFunc: func(ctx context.Context) (int, error) { return 0, storeErr }}
		svc := NewPostService(repo, &mockPreviewLoader{}, false, nil)
		_, err := svc.ListPosts(context.Background(), PageRequest{})
		require.Error(t, err)
		assert.True(t, IsStoreUnavailable(err))
		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, 0, repo.windowCalls)
	})

	t.Run("window", func(t *testing.T) {
		repo := &mockPostRepo{listWindowFunc: func(ctx context.Context, offset, limit int) ([]*Post, error) {
			return nil, storeErr
		}}
		svc := NewPostService(repo, &mockPreviewLoader{}, false, nil)
		_, err := svc.ListPosts(context.Background(), PageRequest{})
		require.Error(t, err)
		assert.True(t, IsStoreUnavailable(err))
	})

	t.Run("previews", func(t *testing.T) {
		repo := &mockPostRepo{}
		newPost(t, repo, "post", "gina", t0)
		loader := &mockPreviewLoader{}
		loader.On("LoadPreviews", mock.Anything, mock.Anything).Return(nil, storeErr)

		svc := NewPostService(repo, loader, false, nil)
		page, err := svc.ListPosts(context.Background(), PageRequest{})
		require.Error(t, err)
		assert.Nil(t, page)
		assert.True(t, IsStoreUnavailable(err))
	})
}

func TestListPosts_RejectsNegativeValues(t *testing.T) {
	svc := NewPostService(&mockPostRepo{}, &mockPreviewLoader{}, false, nil)

	_, err := svc.ListPosts(context.Background(), PageRequest{Page: -1})
	assert.True(t, IsValidationError(err))

	_, err = svc.ListPosts(context.Background(), PageRequest{PageSize: -5})
	assert.True(t, IsValidationError(err))
}

func TestListPosts_Idempotent(t *testing.T) {
	postRepo := &mockPostRepo{}
	commentRepo := &memCommentRepo{}
	p := newPost(t, postRepo, "stable", "hank", t0)
	newComment(t, commentRepo, p.ID, "hi", t0.Add(time.Second))

	svc := NewPostService(postRepo, comments.NewPreviewLoader(commentRepo, nil, nil), false, nil)
	first, err := svc.ListPosts(context.Background(), PageRequest{})
	require.NoError(t, err)
	second, err := svc.ListPosts(context.Background(), PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
