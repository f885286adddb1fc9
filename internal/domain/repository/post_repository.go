package repository

import (
	"context"

	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/valueobject"
)

// PostWithAuthor pairs a post with its author's email for display.
type PostWithAuthor struct {
	Post        *entity.Post
	AuthorEmail string
}

// PostListFilters are optional list filters; nil pointer means "no filter".
// Search matches free text over title and markdown.
type PostListFilters struct {
	AuthorID  *int64
	Published *bool
	Search    string
}

// PostListOptions control pagination and ordering. Page is 1-indexed.
// Zero values fall back to server-defined defaults (page 1, limit 10,
// created_at desc); limit is capped at 100.
type PostListOptions struct {
	Page  int
	Limit int
	Sort  string // created_at, updated_at, title
	Order string // asc, desc
}

type PostListResult struct {
	Posts      []PostWithAuthor
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	FindByID(ctx context.Context, id int64) (*PostWithAuthor, error)
	FindBySlug(ctx context.Context, slug valueobject.Slug) (*PostWithAuthor, error)
	Update(ctx context.Context, p *entity.Post) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters PostListFilters, options PostListOptions) (*PostListResult, error)

	// FindAuthorIDByPostID is a narrow id-only projection used by ownership
	// guards; returns (0, nil) when the post does not exist.
	FindAuthorIDByPostID(ctx context.Context, postID int64) (int64, error)
}
