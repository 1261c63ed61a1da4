package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"pixelgram/backend/internal/auth"
	"pixelgram/backend/internal/models"
	"pixelgram/backend/internal/repository"
	"pixelgram/backend/internal/session"
	"pixelgram/backend/pkg/jwt"
)

const bcryptCost = 12

// AuthHandler exposes signup, login, logout and username availability.
type AuthHandler struct {
	users      repository.UserRepository
	sessions   *session.Store
	sessionTTL time.Duration
	log        *zap.Logger
}

func NewAuthHandler(users repository.UserRepository, sessions *session.Store, sessionTTL time.Duration, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, sessionTTL: sessionTTL, log: log}
}

// SignupInput defines the structure for user registration.
type SignupInput struct {
	Email    string `json:"email" binding:"required,email" example:"test@example.com"`
	Username string `json:"username" binding:"required,username" example:"test.user"`
	Password string `json:"password" binding:"required,min=8,max=128" example:"Password123"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	EmailOrUsername string `json:"emailOrUsername" binding:"required" example:"test.user"`
	Password        string `json:"password" binding:"required" example:"Password123"`
}

// AuthResponse carries the issued token and the account it belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CheckUsernameInput defines the structure for availability checks.
type CheckUsernameInput struct {
	Username string `json:"username" binding:"required"`
}

// CheckUsernameResponse reports availability and, when taken, alternatives.
type CheckUsernameResponse struct {
	Available   bool     `json:"available"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// Signup godoc
// @Summary      Register a new account
// @Description  Creates a new user and returns an authentication token bound to a fresh session.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body SignupInput true "Registration Info"
// @Success      201  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var input SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid signup data: " + err.Error()})
		return
	}

	if !PasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must contain at least one lowercase letter, one uppercase letter, and one number"})
		return
	}

	ctx := c.Request.Context()

	emailTaken, err := h.users.EmailTaken(ctx, input.Email)
	if err != nil {
		h.log.Error("email lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	if emailTaken {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	usernameTaken, err := h.users.UsernameTaken(ctx, input.Username)
	if err != nil {
		h.log.Error("username lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	if usernameTaken {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	user := models.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: string(hashedPassword),
	}
	if err := h.users.Create(ctx, &user); err != nil {
		h.log.Error("user create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := h.issueToken(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: newUserResponse(&user)})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticates a user with email or username and password, and returns a new token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body LoginInput true "Login Info"
// @Success      200  {object}  AuthResponse
// @Failure      400  {object}  ErrorResponse "Invalid input"
// @Failure      401  {object}  ErrorResponse "Invalid credentials"
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid login data"})
		return
	}

	user, err := h.users.GetByLogin(c.Request.Context(), input.EmailOrUsername)
	if err != nil {
		h.log.Error("login lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := h.issueToken(c, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: newUserResponse(user)})
}

// Logout godoc
// @Summary      Log out
// @Description  Deletes the server-side session, invalidating the current token immediately.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), auth.CurrentSessionID(c)); err != nil {
		h.log.Warn("session delete failed", zap.Error(err))
	}
	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// CheckUsername godoc
// @Summary      Check username availability
// @Description  Reports whether a username can be registered, with numeric-suffix suggestions when it cannot.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body CheckUsernameInput true "Username"
// @Success      200  {object}  CheckUsernameResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /auth/check-username [post]
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	var input CheckUsernameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	if !UsernameValid(input.Username) {
		c.JSON(http.StatusOK, CheckUsernameResponse{Available: false})
		return
	}

	taken, err := h.users.UsernameTaken(c.Request.Context(), input.Username)
	if err != nil {
		h.log.Error("username availability check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	if !taken {
		c.JSON(http.StatusOK, CheckUsernameResponse{Available: true})
		return
	}

	suggestions, err := h.suggestUsernames(c, input.Username)
	if err != nil {
		h.log.Error("username suggestions failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, CheckUsernameResponse{Available: false, Suggestions: suggestions})
}

// suggestUsernames proposes free numeric-suffix variants of a taken name.
func (h *AuthHandler) suggestUsernames(c *gin.Context, base string) ([]string, error) {
	var suggestions []string
	for i := 1; len(suggestions) < 3 && i <= 20; i++ {
		candidate := fmt.Sprintf("%s%d", base, i)
		taken, err := h.users.UsernameTaken(c.Request.Context(), candidate)
		if err != nil {
			return nil, err
		}
		if !taken {
			suggestions = append(suggestions, candidate)
		}
	}
	return suggestions, nil
}

func (h *AuthHandler) issueToken(c *gin.Context, userID string) (string, error) {
	sessionID, err := h.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("session create failed", zap.Error(err))
		return "", err
	}

	token, err := jwt.GenerateToken(userID, sessionID, h.sessionTTL)
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		return "", err
	}

	return token, nil
}
