package application

import (
	"time"

	"inkpress/internal/domain/entity"
	"inkpress/internal/domain/repository"
)

// Views are the plain response shapes use cases return to the transport
// layer. They are always rebuilt from a post-write re-fetch, never from the
// in-memory entity that was written.

type UserView struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	AvatarURL string     `json:"avatar_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at"`
}

type LoginView struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type PostView struct {
	ID          int64      `json:"id"`
	AuthorID    int64      `json:"author_id"`
	AuthorEmail string     `json:"author_email"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Markdown    string     `json:"markdown"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at"`
}

type CommentView struct {
	ID          int64     `json:"id"`
	PostID      int64     `json:"post_id"`
	AuthorID    int64     `json:"author_id"`
	AuthorEmail string    `json:"author_email"`
	Body        string    `json:"body"`
	CanEdit     bool      `json:"can_edit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

type PostListView struct {
	Posts      []PostView `json:"posts"`
	Pagination PageMeta   `json:"pagination"`
}

type CommentListView struct {
	Comments   []CommentView `json:"comments"`
	Pagination PageMeta      `json:"pagination"`
}

func newUserView(u *entity.User) *UserView {
	return &UserView{
		ID:        u.ID,
		Email:     u.Email.String(),
		Role:      u.Role.String(),
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

func newPostView(pw *repository.PostWithAuthor) *PostView {
	p := pw.Post
	return &PostView{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		AuthorEmail: pw.AuthorEmail,
		Title:       p.Title,
		Slug:        p.Slug.String(),
		Markdown:    p.Markdown.String(),
		Published:   p.Published,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		DeletedAt:   p.DeletedAt,
	}
}

func newCommentView(cw *repository.CommentWithAuthor, now time.Time) *CommentView {
	c := cw.Comment
	return &CommentView{
		ID:          c.ID,
		PostID:      c.PostID,
		AuthorID:    c.AuthorID,
		AuthorEmail: cw.AuthorEmail,
		Body:        c.Body,
		CanEdit:     c.CanEdit(now),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
