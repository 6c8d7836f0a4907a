package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundtrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	token, exp, err := m.GenerateSessionToken("user-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestParseSessionTokenExpired(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, _, err := m.GenerateSessionToken("user-1")
	require.NoError(t, err)

	_, err = m.ParseSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestParseSessionTokenWrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, _, err := m.GenerateSessionToken("user-1")
	require.NoError(t, err)

	other := NewJWTManager("different", time.Hour)
	_, err = other.ParseSessionToken(token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}

func TestParseSessionTokenMalformed(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	_, err := m.ParseSessionToken("garbage")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTokenExpired)
}
