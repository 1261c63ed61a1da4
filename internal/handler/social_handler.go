package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pixelgram/backend/internal/auth"
	"pixelgram/backend/internal/models"
	"pixelgram/backend/internal/service"
)

// SocialHandler exposes the follow-relationship endpoints.
type SocialHandler struct {
	social *service.SocialService
	log    *zap.Logger
}

func NewSocialHandler(social *service.SocialService, log *zap.Logger) *SocialHandler {
	return &SocialHandler{social: social, log: log}
}

// FollowToggleInput defines the body of the follow toggle endpoint.
type FollowToggleInput struct {
	FollowerID  string `json:"followerId" binding:"required" example:"9f1b..."`
	FollowingID string `json:"followingId" binding:"required" example:"4a2c..."`
	IsPrivate   bool   `json:"isPrivate"`
}

// FollowStatusResponse carries the relationship status after a toggle or a
// status read. Status is null when no relationship exists.
type FollowStatusResponse struct {
	Status *models.FollowStatus `json:"status"`
}

// RequestResolveInput defines the body of the request resolution endpoint.
type RequestResolveInput struct {
	Action        string `json:"action" binding:"required" example:"accept"`
	RequesterID   string `json:"requesterId" binding:"required"`
	CurrentUserID string `json:"currentUserId" binding:"required"`
}

// ToggleFollow godoc
// @Summary      Toggle a follow relationship
// @Description  Follows the target when no relationship exists (pending for private targets), unfollows otherwise. The caller never states intent; the result reports the new state.
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body FollowToggleInput true "Toggle Info"
// @Success      200  {object}  FollowStatusResponse
// @Failure      400  {object}  ErrorResponse "Missing fields or self-follow"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Acting for another user"
// @Failure      500  {object}  ErrorResponse
// @Router       /social/follow [post]
func (h *SocialHandler) ToggleFollow(c *gin.Context) {
	var input FollowToggleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if auth.CurrentUserID(c) != input.FollowerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot follow on behalf of another user"})
		return
	}

	status, err := h.social.ToggleFollow(c.Request.Context(), input.FollowerID, input.FollowingID, input.IsPrivate)
	if err != nil {
		if errors.Is(err, service.ErrFollowSelf) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
			return
		}
		h.log.Error("follow toggle failed",
			zap.String("follower_id", input.FollowerID),
			zap.String("following_id", input.FollowingID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, FollowStatusResponse{Status: status})
}

// ResolveRequest godoc
// @Summary      Accept or reject a follow request
// @Description  Resolves a pending follow request. Accepting flips the row to accepted; rejecting deletes it. The requester is notified either way.
// @Tags         social
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body RequestResolveInput true "Resolution Info"
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse "Missing fields or unknown action"
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Acting for another user"
// @Failure      409  {object}  ErrorResponse "No pending request"
// @Failure      500  {object}  ErrorResponse
// @Router       /social/request [post]
func (h *SocialHandler) ResolveRequest(c *gin.Context) {
	var input RequestResolveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if auth.CurrentUserID(c) != input.CurrentUserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot resolve another user's requests"})
		return
	}

	err := h.social.ResolveRequest(c.Request.Context(), input.Action, input.RequesterID, input.CurrentUserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownAction):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action"})
		case errors.Is(err, service.ErrNoPendingRequest):
			c.JSON(http.StatusConflict, gin.H{"error": "No pending follow request"})
		default:
			h.log.Error("request resolution failed",
				zap.String("action", input.Action),
				zap.String("requester_id", input.RequesterID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		}
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// GetFollowStatus godoc
// @Summary      Get follow status towards a target
// @Description  Returns the authenticated user's relationship status to the target: accepted, pending, or null when none exists.
// @Tags         social
// @Produce      json
// @Security     BearerAuth
// @Param        targetId query string true "Target User ID"
// @Success      200  {object}  FollowStatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /social/status [get]
func (h *SocialHandler) GetFollowStatus(c *gin.Context) {
	targetID := c.Query("targetId")
	if targetID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "targetId is required"})
		return
	}

	status, err := h.social.FollowStatus(c.Request.Context(), auth.CurrentUserID(c), targetID)
	if err != nil {
		h.log.Error("follow status read failed", zap.String("target_id", targetID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, FollowStatusResponse{Status: status})
}
