package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"pixelgram/backend/internal/auth"
	"pixelgram/backend/internal/config"
	"pixelgram/backend/internal/models"
	"pixelgram/backend/internal/repository"
	"pixelgram/backend/internal/service"
	"pixelgram/backend/internal/session"
	"pixelgram/backend/pkg/jwt"
)

// testEnv assembles a full router against in-memory sqlite and miniredis,
// mirroring the wiring in cmd/server.
type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	sessions *session.Store
	ttl      time.Duration
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Follow{}, &models.Notification{}))

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	ttl := time.Hour
	sessions := session.NewStore(redisClient, ttl)

	users := repository.NewUserRepository(db)
	follows := repository.NewFollowRepository(db)
	notifications := repository.NewNotificationRepository(db)

	log := zap.NewNop()
	social := service.NewSocialService(follows, notifications, nil, log)

	authHandler := NewAuthHandler(users, sessions, ttl, log)
	userHandler := NewUserHandler(users, follows, social, log)
	socialHandler := NewSocialHandler(social, log)
	notificationHandler := NewNotificationHandler(notifications, nil, log)

	RegisterValidators()

	router := gin.New()
	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	authRoutes.POST("/signup", authHandler.Signup)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/check-username", authHandler.CheckUsername)
	authRoutes.POST("/logout", auth.Middleware(sessions), authHandler.Logout)

	userRoutes := api.Group("/users")
	userRoutes.GET("/search", auth.OptionalMiddleware(sessions), userHandler.Search)
	userRoutes.GET("/me", auth.Middleware(sessions), userHandler.GetMe)
	userRoutes.PUT("/me", auth.Middleware(sessions), userHandler.UpdateMe)
	userRoutes.GET("/:username", auth.OptionalMiddleware(sessions), userHandler.GetByUsername)

	socialRoutes := api.Group("/social", auth.Middleware(sessions))
	socialRoutes.POST("/follow", socialHandler.ToggleFollow)
	socialRoutes.POST("/request", socialHandler.ResolveRequest)
	socialRoutes.GET("/status", socialHandler.GetFollowStatus)

	notificationRoutes := api.Group("/notifications", auth.Middleware(sessions))
	notificationRoutes.GET("", notificationHandler.List)
	notificationRoutes.POST("/read", notificationHandler.MarkAllRead)

	return &testEnv{router: router, db: db, sessions: sessions, ttl: ttl}
}

// createUser inserts an account directly and returns it. The ID doubles as the
// username so tests can reference both without bookkeeping.
func (e *testEnv) createUser(t *testing.T, username string, isPrivate bool) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:           username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		IsPrivate:    isPrivate,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return &user
}

// login issues a real session-backed token for the user.
func (e *testEnv) login(t *testing.T, userID string) string {
	t.Helper()

	sessionID, err := e.sessions.Create(context.Background(), userID)
	require.NoError(t, err)

	token, err := jwt.GenerateToken(userID, sessionID, e.ttl)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
