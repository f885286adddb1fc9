package valueobject

import (
	"regexp"

	"inkpress/internal/domain/apperr"
)

// slugRe allows lowercase letters, digits and single hyphens; no leading,
// trailing or doubled hyphens. Example: "hello-world-123" is valid,
// "hello--world" is not.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Slug is the URL-safe unique identifier for a post.
type Slug struct {
	value string
}

func NewSlug(value string) (Slug, error) {
	if value == "" {
		return Slug{}, apperr.Validation("Slug is required")
	}
	if len(value) < 3 {
		return Slug{}, apperr.Validation("Slug must be at least 3 characters long")
	}
	if !slugRe.MatchString(value) {
		return Slug{}, apperr.Validation("Slug must contain only lowercase letters, numbers and hyphens")
	}
	return Slug{value: value}, nil
}

func (s Slug) String() string { return s.value }

func (s Slug) Equals(other Slug) bool { return s.value == other.value }

func (s Slug) IsZero() bool { return s.value == "" }
