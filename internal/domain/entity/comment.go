package entity

import (
	"strings"
	"time"

	"inkpress/internal/domain/apperr"
)

// EditWindowMinutes is how long a comment stays editable after creation.
const EditWindowMinutes = 15

const maxCommentBodyLength = 10000

// Comment belongs to a post and an author; both references are immutable.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  int64
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// NewComment validates structural invariants at construction. Failures here
// are programmer/input errors, never expected business flow.
func NewComment(id, postID, authorID int64, body string) (*Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperr.Validation("Comment body cannot be empty")
	}
	if len(body) > maxCommentBodyLength {
		return nil, apperr.Newf(apperr.KindValidation, "Comment body cannot exceed %d characters", maxCommentBodyLength)
	}
	if postID <= 0 {
		return nil, apperr.Validation("Invalid post ID")
	}
	if authorID <= 0 {
		return nil, apperr.Validation("Invalid author ID")
	}
	now := time.Now()
	return &Comment{
		ID:        id,
		PostID:    postID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// CanEdit reports whether the comment is still inside its edit window at the
// supplied instant. Inclusive at exactly EditWindowMinutes. The caller
// supplies now so the predicate stays pure and testable.
func (c *Comment) CanEdit(now time.Time) bool {
	return now.Sub(c.CreatedAt) <= EditWindowMinutes*time.Minute
}

func (c *Comment) Equals(other *Comment) bool {
	return other != nil && c.ID == other.ID
}

func (c *Comment) IsDeleted() bool { return c.DeletedAt != nil }
