package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pixelgram/backend/internal/auth"
	"pixelgram/backend/internal/models"
	"pixelgram/backend/internal/repository"
	"pixelgram/backend/internal/service"
)

// UserHandler exposes profile viewing, editing and username search.
type UserHandler struct {
	users   repository.UserRepository
	follows repository.FollowRepository
	social  *service.SocialService
	log     *zap.Logger
}

func NewUserHandler(users repository.UserRepository, follows repository.FollowRepository, social *service.SocialService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, follows: follows, social: social, log: log}
}

// UserResponse defines the structure for a user's own account data.
type UserResponse struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	Bio        string    `json:"bio"`
	AvatarURL  string    `json:"avatarUrl"`
	IsVerified bool      `json:"isVerified"`
	IsPrivate  bool      `json:"isPrivate"`
	CreatedAt  time.Time `json:"createdAt"`
}

// PublicUserResponse defines the structure for a user's public profile.
type PublicUserResponse struct {
	ID             string               `json:"id"`
	Username       string               `json:"username"`
	FullName       string               `json:"fullName"`
	Bio            string               `json:"bio"`
	AvatarURL      string               `json:"avatarUrl"`
	IsVerified     bool                 `json:"isVerified"`
	IsPrivate      bool                 `json:"isPrivate"`
	FollowersCount int64                `json:"followersCount"`
	FollowingCount int64                `json:"followingCount"`
	IsOwnProfile   bool                 `json:"isOwnProfile"`
	FollowStatus   *models.FollowStatus `json:"followStatus"`
}

// UpdateProfileInput defines the editable profile fields.
type UpdateProfileInput struct {
	FullName  *string `json:"fullName" binding:"omitempty,max=255"`
	Bio       *string `json:"bio" binding:"omitempty,max=150"`
	AvatarURL *string `json:"avatarUrl" binding:"omitempty,max=512"`
	IsPrivate *bool   `json:"isPrivate"`
}

func newUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Bio:        user.Bio,
		AvatarURL:  user.AvatarURL,
		IsVerified: user.IsVerified,
		IsPrivate:  user.IsPrivate,
		CreatedAt:  user.CreatedAt,
	}
}

// GetMe godoc
// @Summary      Get current user's account
// @Description  Retrieves the private profile for the currently authenticated user.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		h.log.Error("user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update profile
// @Description  Updates the editable profile fields of the authenticated user.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body UpdateProfileInput true "Profile fields"
// @Success      200  {object}  UserResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile data"})
		return
	}

	fields := map[string]interface{}{}
	if input.FullName != nil {
		fields["full_name"] = *input.FullName
	}
	if input.Bio != nil {
		fields["bio"] = *input.Bio
	}
	if input.AvatarURL != nil {
		fields["avatar_url"] = *input.AvatarURL
	}
	if input.IsPrivate != nil {
		fields["is_private"] = *input.IsPrivate
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	ctx := c.Request.Context()
	userID := auth.CurrentUserID(c)

	if err := h.users.UpdateProfile(ctx, userID, fields); err != nil {
		h.log.Error("profile update failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	user, err := h.users.GetByID(ctx, userID)
	if err != nil || user == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// GetByUsername godoc
// @Summary      Get a public profile
// @Description  Retrieves a user's public profile with follower counts and, when authenticated, the viewer's relationship status.
// @Tags         users
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  PublicUserResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /users/{username} [get]
func (h *UserHandler) GetByUsername(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.users.GetByUsername(ctx, c.Param("username"))
	if err != nil {
		h.log.Error("profile lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	followers, err := h.follows.CountFollowers(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}
	following, err := h.follows.CountFollowing(ctx, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	response := PublicUserResponse{
		ID:             user.ID,
		Username:       user.Username,
		FullName:       user.FullName,
		Bio:            user.Bio,
		AvatarURL:      user.AvatarURL,
		IsVerified:     user.IsVerified,
		IsPrivate:      user.IsPrivate,
		FollowersCount: followers,
		FollowingCount: following,
	}

	if viewerID := auth.CurrentUserID(c); viewerID != "" {
		response.IsOwnProfile = viewerID == user.ID
		if !response.IsOwnProfile {
			status, err := h.social.FollowStatus(ctx, viewerID, user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
				return
			}
			response.FollowStatus = status
		}
	}

	c.JSON(http.StatusOK, response)
}

// Search godoc
// @Summary      Search for users
// @Description  Searches usernames by case-insensitive substring with pagination.
// @Tags         users
// @Produce      json
// @Param        q     query     string  true   "Search query"
// @Param        page  query     int     false  "Page number" default(1)
// @Param        limit query     int     false  "Items per page" default(20)
// @Success      200   {object}  PaginatedResponse[PublicUserResponse]
// @Failure      400   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	page, limit := pageParams(c)
	offset := (page - 1) * limit

	users, total, err := h.users.Search(c.Request.Context(), query, offset, limit)
	if err != nil {
		h.log.Error("user search failed", zap.String("query", query), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	results := make([]PublicUserResponse, 0, len(users))
	for _, user := range users {
		results = append(results, PublicUserResponse{
			ID:         user.ID,
			Username:   user.Username,
			FullName:   user.FullName,
			AvatarURL:  user.AvatarURL,
			IsVerified: user.IsVerified,
			IsPrivate:  user.IsPrivate,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(results, total, page, limit))
}
