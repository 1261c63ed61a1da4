package handler

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pixelgram/backend/internal/auth"
	"pixelgram/backend/internal/hub"
	"pixelgram/backend/internal/models"
	"pixelgram/backend/internal/repository"
)

// NotificationHandler exposes the notification view: listing, read-marking
// and a live event stream.
type NotificationHandler struct {
	notifications repository.NotificationRepository
	events        *hub.Hub
	log           *zap.Logger
}

func NewNotificationHandler(notifications repository.NotificationRepository, events *hub.Hub, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, events: events, log: log}
}

// NotificationActor identifies who triggered a notification.
type NotificationActor struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// NotificationResponse is a single entry of the notification list.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	IsRead    bool                    `json:"isRead"`
	CreatedAt time.Time               `json:"createdAt"`
	Actor     NotificationActor       `json:"actor"`
}

// List godoc
// @Summary      List notifications
// @Description  Returns the authenticated user's notifications, newest first, with the triggering actor attached.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number" default(1)
// @Param        limit query     int  false  "Items per page" default(20)
// @Success      200  {array}   NotificationResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := pageParams(c)
	offset := (page - 1) * limit

	userID := auth.CurrentUserID(c)
	notifications, err := h.notifications.ListForUser(c.Request.Context(), userID, offset, limit)
	if err != nil {
		h.log.Error("notification list failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	responses := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
			Actor: NotificationActor{
				ID:        n.Actor.ID,
				Username:  n.Actor.Username,
				AvatarURL: n.Actor.AvatarURL,
			},
		})
	}

	c.JSON(http.StatusOK, responses)
}

// MarkAllRead godoc
// @Summary      Mark all notifications read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /notifications/read [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := auth.CurrentUserID(c)
	if err := h.notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		h.log.Error("notification read-marking failed", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalErrorMessage})
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true})
}

// Stream godoc
// @Summary      Live notification stream
// @Description  Server-sent events stream of follow notifications for the authenticated user.
// @Tags         notifications
// @Produce      text/event-stream
// @Security     BearerAuth
// @Success      200  {string}  string  "event stream"
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications/stream [get]
func (h *NotificationHandler) Stream(c *gin.Context) {
	userID := auth.CurrentUserID(c)

	client := make(hub.Client, 8)
	h.events.Subscribe(userID, client)
	defer h.events.Unsubscribe(userID, client)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("notification", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
