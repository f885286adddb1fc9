package entity

import (
	"time"

	"inkpress/internal/domain/valueobject"
)

// Post is a blog post. AuthorID and ID never change after construction;
// the publish flag and UpdatedAt are the only fields mutated in place.
// Title bounds (1-255) are enforced at the request-binding boundary.
type Post struct {
	ID        int64
	AuthorID  int64
	Title     string
	Slug      valueobject.Slug
	Markdown  valueobject.Markdown
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

func NewPost(id, authorID int64, title string, slug valueobject.Slug, markdown valueobject.Markdown, published bool) *Post {
	now := time.Now()
	return &Post{
		ID:        id,
		AuthorID:  authorID,
		Title:     title,
		Slug:      slug,
		Markdown:  markdown,
		Published: published,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Publish transitions draft -> published. A no-op when already published;
// UpdatedAt advances only on an actual transition.
func (p *Post) Publish() {
	if !p.Published {
		p.Published = true
		p.UpdatedAt = time.Now()
	}
}

// Unpublish transitions published -> draft, with the same idempotency rule.
func (p *Post) Unpublish() {
	if p.Published {
		p.Published = false
		p.UpdatedAt = time.Now()
	}
}

func (p *Post) Equals(other *Post) bool {
	return other != nil && p.ID == other.ID
}

func (p *Post) IsDeleted() bool { return p.DeletedAt != nil }

func (p *Post) MarkDeleted() {
	if p.DeletedAt == nil {
		now := time.Now()
		p.DeletedAt = &now
		p.UpdatedAt = now
	}
}

func (p *Post) Restore() {
	if p.DeletedAt != nil {
		p.DeletedAt = nil
		p.UpdatedAt = time.Now()
	}
}
