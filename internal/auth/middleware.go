package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pixelgram/backend/internal/session"
	"pixelgram/backend/pkg/jwt"
)

// Context keys the middleware stores the authenticated identity under.
const (
	ContextUserIDKey    = "userID"
	ContextSessionIDKey = "sessionID"
)

// Middleware validates the bearer token and the server-side session it is
// bound to. A syntactically valid JWT whose session has been deleted or has
// expired is rejected, so logout revokes tokens immediately.
func Middleware(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, sessionID, ok := authenticate(c, sessions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		c.Set(ContextUserIDKey, userID)
		c.Set(ContextSessionIDKey, sessionID)
		c.Next()
	}
}

// OptionalMiddleware inspects for a token and sets the userID if present and
// valid, but does not fail if the token is missing or invalid.
func OptionalMiddleware(sessions *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, sessionID, ok := authenticate(c, sessions); ok {
			c.Set(ContextUserIDKey, userID)
			c.Set(ContextSessionIDKey, sessionID)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID set by the middleware.
func CurrentUserID(c *gin.Context) string {
	return stringFromContext(c, ContextUserIDKey)
}

// CurrentSessionID returns the session ID set by the middleware.
func CurrentSessionID(c *gin.Context) string {
	return stringFromContext(c, ContextSessionIDKey)
}

func stringFromContext(c *gin.Context, key string) string {
	if value, ok := c.Get(key); ok {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}

func authenticate(c *gin.Context, sessions *session.Store) (userID, sessionID string, ok bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", "", false
	}

	userID, sessionID, err := jwt.ParseToken(parts[1])
	if err != nil {
		return "", "", false
	}

	sessionUserID, err := sessions.Validate(c.Request.Context(), sessionID)
	if err != nil || sessionUserID != userID {
		return "", "", false
	}

	return userID, sessionID, true
}
