package repository

import (
	"context"

	"inkpress/internal/domain/entity"
)

// CommentWithAuthor pairs a comment with its author's email for display.
type CommentWithAuthor struct {
	Comment     *entity.Comment
	AuthorEmail string
}

type CommentListFilters struct {
	AuthorID *int64
}

type CommentListOptions struct {
	Page  int
	Limit int
	Sort  string // created_at, updated_at
	Order string // asc, desc
}

type CommentListResult struct {
	Comments   []CommentWithAuthor
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

type CommentRepository interface {
	// Create persists a new comment and returns the storage-assigned id.
	Create(ctx context.Context, c *entity.Comment) (int64, error)
	FindByID(ctx context.Context, id int64) (*CommentWithAuthor, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, id int64) error
	ListByPost(ctx context.Context, postID int64, filters CommentListFilters, options CommentListOptions) (*CommentListResult, error)

	// Narrow id-only projections for ownership guards; (0, nil) when absent.
	FindAuthorIDByCommentID(ctx context.Context, commentID int64) (int64, error)
	FindPostIDByCommentID(ctx context.Context, commentID int64) (int64, error)
}
