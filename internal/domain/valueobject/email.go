package valueobject

import (
	"regexp"

	"inkpress/internal/domain/apperr"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email is a validated, immutable email address.
type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	if value == "" {
		return Email{}, apperr.Validation("Email is required")
	}
	if !emailRe.MatchString(value) {
		return Email{}, apperr.Validation("Invalid email address format")
	}
	return Email{value: value}, nil
}

func (e Email) String() string { return e.value }

func (e Email) Equals(other Email) bool { return e.value == other.value }

// IsZero reports whether the Email was never constructed through NewEmail.
func (e Email) IsZero() bool { return e.value == "" }
