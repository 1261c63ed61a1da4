package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixelgram/backend/internal/config"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
	m.Run()
}

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("user-1", "session-1", time.Hour)
	require.NoError(t, err)

	userID, sessionID, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "session-1", sessionID)
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", "session-1", -time.Minute)
	require.NoError(t, err)

	_, _, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseGarbage(t *testing.T) {
	_, _, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenSignedWithAnotherSecret(t *testing.T) {
	token, err := GenerateToken("user-1", "session-1", time.Hour)
	require.NoError(t, err)

	config.AppConfig = &config.Config{JWTSecret: "rotated-secret"}
	defer func() { config.AppConfig = &config.Config{JWTSecret: "test-secret"} }()

	_, _, err = ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
