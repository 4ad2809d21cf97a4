package auth

import (
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/clock"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndParse(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	m := NewTokenManager("secret", time.Hour, clock.NewFixed(now))

	token, err := m.Issue(domain.User{ID: 7, Username: "admin", IsStaff: true})
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenManager_Expired(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	token, err := NewTokenManager("secret", time.Minute, clock.NewFixed(now)).Issue(domain.User{ID: 1})
	require.NoError(t, err)

	later := NewTokenManager("secret", time.Minute, clock.NewFixed(now.Add(2*time.Minute)))
	_, err = later.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret", time.Hour, nil).Issue(domain.User{ID: 1})
	require.NoError(t, err)

	_, err = NewTokenManager("other", time.Hour, nil).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("secret", time.Hour, nil).Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
