package application

import (
	"context"

	"inkpress/internal/domain/apperr"
	"inkpress/internal/domain/repository"
	"inkpress/internal/domain/valueobject"
)

// Identity is the authenticated caller as carried by the signed credential.
type Identity struct {
	UserID int64
	Email  string
	Role   valueobject.Role
}

// PostOwnershipGuard gates post mutation: only the post's author may act.
// Deliberately no admin override here; comment moderation has one, post
// ownership does not.
type PostOwnershipGuard struct {
	Posts repository.PostRepository
}

func NewPostOwnershipGuard(posts repository.PostRepository) *PostOwnershipGuard {
	return &PostOwnershipGuard{Posts: posts}
}

func (g *PostOwnershipGuard) Authorize(ctx context.Context, ident *Identity, postID int64) error {
	if ident == nil || ident.UserID <= 0 {
		return apperr.Forbidden("User not authenticated")
	}

	authorID, err := g.Posts.FindAuthorIDByPostID(ctx, postID)
	if err != nil {
		return err
	}
	if authorID == 0 {
		return apperr.NotFound("Post not found")
	}
	if authorID != ident.UserID {
		return apperr.Forbidden("You do not own this post")
	}
	return nil
}

// CommentOwnershipGuard gates comment mutation. Allowed callers, in check
// order: admins, the comment's author, and the author of the parent post
// (who may moderate comments under their own post).
type CommentOwnershipGuard struct {
	Comments repository.CommentRepository
	Posts    repository.PostRepository
}

func NewCommentOwnershipGuard(comments repository.CommentRepository, posts repository.PostRepository) *CommentOwnershipGuard {
	return &CommentOwnershipGuard{Comments: comments, Posts: posts}
}

func (g *CommentOwnershipGuard) Authorize(ctx context.Context, ident *Identity, commentID int64) error {
	if ident == nil || ident.UserID <= 0 {
		return apperr.Forbidden("User not authenticated")
	}

	comment, err := g.Comments.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return apperr.NotFound("Comment not found")
	}

	if ident.Role.IsAdmin() {
		return nil
	}
	if comment.Comment.AuthorID == ident.UserID {
		return nil
	}

	postAuthorID, err := g.Posts.FindAuthorIDByPostID(ctx, comment.Comment.PostID)
	if err != nil {
		return err
	}
	if postAuthorID != 0 && postAuthorID == ident.UserID {
		return nil
	}

	return apperr.Forbidden("You do not have permission to modify this comment")
}
