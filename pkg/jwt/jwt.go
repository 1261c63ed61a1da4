package jwt

import (
	"errors"
	"fmt"
	"pixelgram/backend/internal/config"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a token fails signature or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// GenerateToken creates a new JWT binding a user to a server-side session.
// The session ID is carried in the "sid" claim so the auth middleware can
// verify the session is still live before trusting the token.
func GenerateToken(userID, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"sid": sessionID,
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(config.AppConfig.JWTSecret))
}

// ParseToken validates a token and returns the user and session IDs it carries.
func ParseToken(tokenString string) (userID, sessionID string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}

	userID, _ = claims["sub"].(string)
	sessionID, _ = claims["sid"].(string)
	if userID == "" || sessionID == "" {
		return "", "", ErrInvalidToken
	}

	return userID, sessionID, nil
}
