package valueobject

import (
	"strings"

	"inkpress/internal/domain/apperr"
)

// MarkdownMaxLength caps post bodies at roughly 1MB of text.
const MarkdownMaxLength = 1_000_000

// Markdown is the body content of a post.
type Markdown struct {
	value string
}

func NewMarkdown(value string) (Markdown, error) {
	if value == "" {
		return Markdown{}, apperr.Validation("Markdown is required")
	}
	if strings.TrimSpace(value) == "" {
		return Markdown{}, apperr.Validation("Markdown cannot be empty")
	}
	if len(value) > MarkdownMaxLength {
		return Markdown{}, apperr.Newf(apperr.KindValidation, "Markdown cannot exceed %d characters", MarkdownMaxLength)
	}
	return Markdown{value: value}, nil
}

func (m Markdown) String() string { return m.value }

func (m Markdown) Equals(other Markdown) bool { return m.value == other.value }

func (m Markdown) IsZero() bool { return m.value == "" }
