package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpress/internal/domain/apperr"
)

func newPostService() (*PostService, *memPostRepo) {
	posts := newMemPostRepo()
	posts.emails[1] = "author@example.com"
	posts.emails[2] = "other@example.com"
	return NewPostService(posts, testLogger()), posts
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }
func i64ptr(i int64) *int64   { return &i }

func TestCreatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("creates and returns the persisted post", func(t *testing.T) {
		svc, _ := newPostService()

		view, err := svc.Create(ctx, 1, CreatePostInput{
			Title:    "First Post",
			Slug:     "first-post",
			Markdown: "# hello",
		})
		require.NoError(t, err)
		assert.NotZero(t, view.ID)
		assert.Equal(t, int64(1), view.AuthorID)
		assert.Equal(t, "author@example.com", view.AuthorEmail)
		assert.False(t, view.Published, "defaults to draft")
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		svc, _ := newPostService()

		_, err := svc.Create(ctx, 1, CreatePostInput{Title: "A", Slug: "taken", Markdown: "x"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, 2, CreatePostInput{Title: "B", Slug: "taken", Markdown: "y"})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
		assert.Equal(t, "Slug already exists", err.Error())
	})

	t.Run("slug freed by a deleted post is reusable", func(t *testing.T) {
		svc, _ := newPostService()

		view, err := svc.Create(ctx, 1, CreatePostInput{Title: "A", Slug: "recycled", Markdown: "x"})
		require.NoError(t, err)
		require.NoError(t, svc.Delete(ctx, view.ID))

		_, err = svc.Create(ctx, 2, CreatePostInput{Title: "B", Slug: "recycled", Markdown: "y"})
		require.NoError(t, err)
	})

	t.Run("rejects invalid slug", func(t *testing.T) {
		svc, _ := newPostService()

		_, err := svc.Create(ctx, 1, CreatePostInput{Title: "A", Slug: "Bad Slug", Markdown: "x"})
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*PostService, int64) {
		svc, _ := newPostService()
		view, err := svc.Create(ctx, 1, CreatePostInput{Title: "Original", Slug: "original", Markdown: "body"})
		require.NoError(t, err)
		return svc, view.ID
	}

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		svc, id := setup(t)

		view, err := svc.Update(ctx, id, UpdatePostInput{Title: strptr("Renamed")})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", view.Title)
		assert.Equal(t, "original", view.Slug)
		assert.Equal(t, "body", view.Markdown)
	})

	t.Run("keeping own slug is not a conflict", func(t *testing.T) {
		svc, id := setup(t)

		_, err := svc.Update(ctx, id, UpdatePostInput{Slug: strptr("original")})
		require.NoError(t, err)
	})

	t.Run("changing to a taken slug conflicts", func(t *testing.T) {
		svc, id := setup(t)
		_, err := svc.Create(ctx, 2, CreatePostInput{Title: "Other", Slug: "occupied", Markdown: "z"})
		require.NoError(t, err)

		_, err = svc.Update(ctx, id, UpdatePostInput{Slug: strptr("occupied")})
		require.Error(t, err)
		assert.True(t, apperr.IsConflict(err))
	})

	t.Run("missing post", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Update(ctx, 999, UpdatePostInput{Title: strptr("X")})
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
		assert.Equal(t, "Post not found", err.Error())
	})

	t.Run("creation time survives updates", func(t *testing.T) {
		svc, id := setup(t)
		before, err := svc.Posts.FindByID(ctx, id)
		require.NoError(t, err)

		view, err := svc.Update(ctx, id, UpdatePostInput{Markdown: strptr("new body")})
		require.NoError(t, err)
		assert.Equal(t, before.Post.CreatedAt, view.CreatedAt)
	})
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPostService()

	view, err := svc.Create(ctx, 1, CreatePostInput{Title: "Doomed", Slug: "doomed", Markdown: "x"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, view.ID))

	t.Run("deleted post is gone from reads", func(t *testing.T) {
		_, err := svc.GetBySlug(ctx, "doomed")
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("second delete reports not found", func(t *testing.T) {
		err := svc.Delete(ctx, view.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("unknown id reports not found", func(t *testing.T) {
		err := svc.Delete(ctx, 12345)
		require.Error(t, err)
		assert.True(t, apperr.IsNotFound(err))
	})
}

func TestTogglePublish(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPostService()

	view, err := svc.Create(ctx, 1, CreatePostInput{Title: "Draft", Slug: "draft", Markdown: "x"})
	require.NoError(t, err)
	require.False(t, view.Published)

	published, err := svc.TogglePublish(ctx, view.ID)
	require.NoError(t, err)
	assert.True(t, published.Published)

	unpublished, err := svc.TogglePublish(ctx, view.ID)
	require.NoError(t, err)
	assert.False(t, unpublished.Published)

	_, err = svc.TogglePublish(ctx, 999)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCheckSlug(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPostService()

	_, err := svc.Create(ctx, 1, CreatePostInput{Title: "T", Slug: "claimed", Markdown: "x"})
	require.NoError(t, err)

	available, err := svc.CheckSlug(ctx, "claimed")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.CheckSlug(ctx, "unclaimed")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.CheckSlug(ctx, "!!")
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
}

func TestListPosts(t *testing.T) {
	ctx := context.Background()
	svc, _ := newPostService()

	for i := 0; i < 25; i++ {
		_, err := svc.Create(ctx, 1, CreatePostInput{
			Title:     fmt.Sprintf("Post %02d", i),
			Slug:      fmt.Sprintf("post-%02d", i),
			Markdown:  "body",
			Published: i%2 == 0,
		})
		require.NoError(t, err)
	}

	t.Run("default pagination", func(t *testing.T) {
		res, err := svc.List(ctx, ListPostsInput{})
		require.NoError(t, err)
		assert.Len(t, res.Posts, 10)
		assert.Equal(t, 25, res.Pagination.Total)
		assert.Equal(t, 1, res.Pagination.Page)
		assert.Equal(t, 10, res.Pagination.Limit)
		assert.Equal(t, 3, res.Pagination.TotalPages)
	})

	t.Run("last page is partial", func(t *testing.T) {
		res, err := svc.List(ctx, ListPostsInput{Page: 3})
		require.NoError(t, err)
		assert.Len(t, res.Posts, 5)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		res, err := svc.List(ctx, ListPostsInput{Page: 4})
		require.NoError(t, err)
		assert.Empty(t, res.Posts)
		assert.Equal(t, 25, res.Pagination.Total)
	})

	t.Run("published filter", func(t *testing.T) {
		res, err := svc.List(ctx, ListPostsInput{Published: boolptr(true), Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, 13, res.Pagination.Total)
		for _, p := range res.Posts {
			assert.True(t, p.Published)
		}
	})

	t.Run("author filter", func(t *testing.T) {
		res, err := svc.List(ctx, ListPostsInput{AuthorID: i64ptr(2)})
		require.NoError(t, err)
		assert.Zero(t, res.Pagination.Total)
	})

	t.Run("title sort ascending", func(t *testing.T) {
		res, err := svc.List(ctx, ListPostsInput{Sort: "title", Order: "asc", Limit: 3})
		require.NoError(t, err)
		require.Len(t, res.Posts, 3)
		assert.Equal(t, "Post 00", res.Posts[0].Title)
		assert.Equal(t, "Post 01", res.Posts[1].Title)
	})
}

func TestSearchWithoutES(t *testing.T) {
	svc, _ := newPostService()

	hits, err := svc.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits, "search degrades to empty results when the index is absent")
}
