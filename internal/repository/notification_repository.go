package repository

import (
	"context"

	"gorm.io/gorm"

	"pixelgram/backend/internal/models"
)

// NotificationRepository persists follow-event notifications. The core only
// appends; listing and read-marking serve the notification view.
type NotificationRepository interface {
	Create(ctx context.Context, userID, actorID string, typ models.NotificationType) error
	ListForUser(ctx context.Context, userID string, offset, limit int) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, userID, actorID string, typ models.NotificationType) error {
	notification := models.Notification{
		UserID:  userID,
		ActorID: actorID,
		Type:    typ,
	}
	return r.db.WithContext(ctx).Create(&notification).Error
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID string, offset, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
