package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpress/internal/domain/apperr"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "valid", input: "user@example.com"},
		{name: "valid with plus", input: "user+tag@example.co.uk"},
		{name: "empty", input: "", wantErr: "Email is required"},
		{name: "missing at", input: "userexample.com", wantErr: "Invalid email address format"},
		{name: "missing domain dot", input: "user@example", wantErr: "Invalid email address format"},
		{name: "contains space", input: "us er@example.com", wantErr: "Invalid email address format"},
		{name: "double at", input: "user@@example.com", wantErr: "Invalid email address format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEmail(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, apperr.IsValidation(err))
				assert.True(t, e.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, e.String())
		})
	}
}

func TestEmailEquals(t *testing.T) {
	a, err := NewEmail("a@example.com")
	require.NoError(t, err)
	b, err := NewEmail("a@example.com")
	require.NoError(t, err)
	c, err := NewEmail("c@example.com")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestNewSlug(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "valid", input: "hello-world"},
		{name: "valid with digits", input: "post-123"},
		{name: "minimum length", input: "abc"},
		{name: "empty", input: "", wantErr: "Slug is required"},
		{name: "too short", input: "ab", wantErr: "Slug must be at least 3 characters long"},
		{name: "uppercase", input: "Hello-World", wantErr: "Slug must contain only lowercase letters, numbers and hyphens"},
		{name: "leading hyphen", input: "-hello", wantErr: "Slug must contain only lowercase letters, numbers and hyphens"},
		{name: "trailing hyphen", input: "hello-", wantErr: "Slug must contain only lowercase letters, numbers and hyphens"},
		{name: "double hyphen", input: "hello--world", wantErr: "Slug must contain only lowercase letters, numbers and hyphens"},
		{name: "spaces", input: "hello world", wantErr: "Slug must contain only lowercase letters, numbers and hyphens"},
		{name: "underscores", input: "hello_world", wantErr: "Slug must contain only lowercase letters, numbers and hyphens"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSlug(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				assert.True(t, apperr.IsValidation(err))
				assert.True(t, s.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, s.String())
		})
	}
}

func TestNewMarkdown(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		m, err := NewMarkdown("# Title\n\nbody")
		require.NoError(t, err)
		assert.Equal(t, "# Title\n\nbody", m.String())
	})

	t.Run("empty", func(t *testing.T) {
		_, err := NewMarkdown("")
		require.Error(t, err)
		assert.Equal(t, "Markdown is required", err.Error())
	})

	t.Run("whitespace only", func(t *testing.T) {
		_, err := NewMarkdown("   \n\t ")
		require.Error(t, err)
		assert.Equal(t, "Markdown cannot be empty", err.Error())
	})

	t.Run("at max length", func(t *testing.T) {
		_, err := NewMarkdown(strings.Repeat("a", MarkdownMaxLength))
		require.NoError(t, err)
	})

	t.Run("over max length", func(t *testing.T) {
		_, err := NewMarkdown(strings.Repeat("a", MarkdownMaxLength+1))
		require.Error(t, err)
		assert.True(t, apperr.IsValidation(err))
	})
}

func TestNewRole(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantAdmin bool
		wantErr   string
	}{
		{name: "admin", input: "admin", wantAdmin: true},
		{name: "user", input: "user"},
		{name: "empty", input: "", wantErr: "Role is required"},
		{name: "unknown", input: "moderator", wantErr: "Invalid role, must be one of: admin, user"},
		{name: "case sensitive", input: "Admin", wantErr: "Invalid role, must be one of: admin, user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRole(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, r.String())
			assert.Equal(t, tt.wantAdmin, r.IsAdmin())
		})
	}
}
