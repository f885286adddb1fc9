package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSignAndParse(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, exp, err := m.Sign(42, "user@example.com", "admin")
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTParseRejectsWrongSecret(t *testing.T) {
	a := NewJWTManager("secret-a", time.Hour)
	b := NewJWTManager("secret-b", time.Hour)

	token, _, err := a.Sign(1, "u@example.com", "user")
	require.NoError(t, err)

	_, err = b.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseRejectsExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, _, err := m.Sign(1, "u@example.com", "user")
	require.NoError(t, err)

	_, err = m.Parse(token)
	assert.Error(t, err)
}

func TestJWTParseRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.Parse("not.a.token")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{}

	hash, err := h.Hash("swordfish")
	require.NoError(t, err)
	assert.NotEqual(t, "swordfish", hash)

	assert.True(t, h.Compare(hash, "swordfish"))
	assert.False(t, h.Compare(hash, "swordfish1"))
	assert.False(t, h.Compare("not-a-hash", "swordfish"))
}
