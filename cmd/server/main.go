package main

import (
	"context"
	"net/http"
	"time"

	"pixelgram/backend/internal/auth"
	"pixelgram/backend/internal/config"
	"pixelgram/backend/internal/database"
	"pixelgram/backend/internal/handler"
	"pixelgram/backend/internal/hub"
	"pixelgram/backend/internal/middleware"
	"pixelgram/backend/internal/observability"
	"pixelgram/backend/internal/repository"
	"pixelgram/backend/internal/service"
	"pixelgram/backend/internal/session"
	"pixelgram/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "pixelgram/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Pixelgram API
// @version         1.0
// @description     This is the API for the Pixelgram service.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.AppConfig

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Connect to the database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}
	log.Info("connected to database")

	// Connect to redis for the session store
	redisClient := session.NewRedis(cfg)
	if err := session.Ping(context.Background(), redisClient); err != nil {
		log.Fatal("redis ping failed", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessions := session.NewStore(redisClient, sessionTTL)

	// Wire repositories, services and handlers
	users := repository.NewUserRepository(db)
	follows := repository.NewFollowRepository(db)
	notifications := repository.NewNotificationRepository(db)

	events := hub.NewHub()
	social := service.NewSocialService(follows, notifications, events, log)

	authHandler := handler.NewAuthHandler(users, sessions, sessionTTL, log)
	userHandler := handler.NewUserHandler(users, follows, social, log)
	socialHandler := handler.NewSocialHandler(social, log)
	notificationHandler := handler.NewNotificationHandler(notifications, events, log)

	handler.RegisterValidators()

	metrics := observability.NewHTTPMetrics("pixelgram-backend")

	router := gin.New()
	router.Use(
		middleware.RequestID(""),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		metrics.Middleware(),
	)

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/signup", authHandler.Signup)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/check-username", authHandler.CheckUsername)
			authRoutes.POST("/logout", auth.Middleware(sessions), authHandler.Logout)
		}

		// User routes
		userRoutes := api.Group("/users")
		{
			userRoutes.GET("/search", auth.OptionalMiddleware(sessions), userHandler.Search) // Must be before /:username
			userRoutes.GET("/me", auth.Middleware(sessions), userHandler.GetMe)
			userRoutes.PUT("/me", auth.Middleware(sessions), userHandler.UpdateMe)
			userRoutes.GET("/:username", auth.OptionalMiddleware(sessions), userHandler.GetByUsername)
		}

		// Social routes (protected)
		socialRoutes := api.Group("/social")
		socialRoutes.Use(auth.Middleware(sessions))
		{
			socialRoutes.POST("/follow", socialHandler.ToggleFollow)
			socialRoutes.POST("/request", socialHandler.ResolveRequest)
			socialRoutes.GET("/status", socialHandler.GetFollowStatus)
		}

		// Notification routes (protected)
		notificationRoutes := api.Group("/notifications")
		notificationRoutes.Use(auth.Middleware(sessions))
		{
			notificationRoutes.GET("", notificationHandler.List)
			notificationRoutes.POST("/read", notificationHandler.MarkAllRead)
			notificationRoutes.GET("/stream", notificationHandler.Stream)
		}
	}

	addr := ":" + cfg.Port
	log.Info("server starting", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
