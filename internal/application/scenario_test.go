package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpress/internal/domain/apperr"
	"inkpress/internal/domain/valueobject"
)

// Walks the whole publishing flow across services and guards with shared
// in-memory storage: two accounts, a draft that becomes public, a comment
// under it, moderation, and the slug being freed by deletion.
func TestPublishingLifecycle(t *testing.T) {
	ctx := context.Background()

	users := newMemUserRepo()
	posts := newMemPostRepo()
	comments := newMemCommentRepo()
	clock := newFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	authSvc := NewAuthService(users, fakeHasher{}, fakeTokens{exp: time.Now().Add(time.Hour)}, testLogger())
	postSvc := NewPostService(posts, testLogger())
	commentSvc := NewCommentService(comments, posts, clock, testLogger())
	postGuard := NewPostOwnershipGuard(posts)
	commentGuard := NewCommentOwnershipGuard(comments, posts)

	// two accounts
	author, err := authSvc.Register(ctx, "author@example.com", "password123")
	require.NoError(t, err)
	reader, err := authSvc.Register(ctx, "reader@example.com", "password123")
	require.NoError(t, err)
	posts.emails[author.ID] = author.Email
	posts.emails[reader.ID] = reader.Email
	comments.emails[author.ID] = author.Email
	comments.emails[reader.ID] = reader.Email

	authorIdent := &Identity{UserID: author.ID, Email: author.Email, Role: valueobject.RoleUser}
	readerIdent := &Identity{UserID: reader.ID, Email: reader.Email, Role: valueobject.RoleUser}

	// author drafts a post
	draft, err := postSvc.Create(ctx, author.ID, CreatePostInput{
		Title:    "Going Live",
		Slug:     "going-live",
		Markdown: "# soon",
	})
	require.NoError(t, err)
	require.False(t, draft.Published)

	// nobody can comment on the draft
	_, err = commentSvc.Create(ctx, draft.ID, reader.ID, "first!")
	require.Error(t, err)
	assert.True(t, apperr.IsPolicy(err))

	// only the author may publish
	require.Error(t, postGuard.Authorize(ctx, readerIdent, draft.ID))
	require.NoError(t, postGuard.Authorize(ctx, authorIdent, draft.ID))
	live, err := postSvc.TogglePublish(ctx, draft.ID)
	require.NoError(t, err)
	require.True(t, live.Published)

	// now the reader comments
	comment, err := commentSvc.Create(ctx, live.ID, reader.ID, "first!")
	require.NoError(t, err)
	assert.Equal(t, reader.Email, comment.AuthorEmail)

	// the reader edits within the window
	require.NoError(t, commentGuard.Authorize(ctx, readerIdent, comment.ID))
	edited, err := commentSvc.Update(ctx, comment.ID, strptr("first! (fixed typo)"))
	require.NoError(t, err)
	assert.Equal(t, "first! (fixed typo)", edited.Body)

	// the post author moderates the comment away
	require.NoError(t, commentGuard.Authorize(ctx, authorIdent, comment.ID))
	require.NoError(t, commentSvc.Delete(ctx, comment.ID))

	listed, err := commentSvc.ListByPost(ctx, live.ID, ListCommentsInput{})
	require.NoError(t, err)
	assert.Empty(t, listed.Comments)

	// the slug is taken while the post lives, free once it is deleted
	_, err = postSvc.Create(ctx, reader.ID, CreatePostInput{Title: "Copy", Slug: "going-live", Markdown: "x"})
	require.Error(t, err)
	assert.True(t, apperr.IsConflict(err))

	require.NoError(t, postSvc.Delete(ctx, live.ID))
	available, err := postSvc.CheckSlug(ctx, "going-live")
	require.NoError(t, err)
	assert.True(t, available)
}
