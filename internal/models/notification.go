package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationType identifies the follow-state transition that produced a
// notification.
type NotificationType string

const (
	NotificationFollowRequest  NotificationType = "follow_request"
	NotificationFollowStarted  NotificationType = "follow_started"
	NotificationFollowAccepted NotificationType = "follow_accepted"
	NotificationFollowRejected NotificationType = "follow_rejected"
)

// Notification is an append-only record of a follow-state transition. The core
// only inserts rows; the notification view reads and marks them.
type Notification struct {
	ID      string           `gorm:"type:uuid;primaryKey"`
	UserID  string           `gorm:"type:uuid;not null;index"`
	ActorID string           `gorm:"type:uuid;not null"`
	Type    NotificationType `gorm:"type:varchar(30);not null"`
	IsRead  bool             `gorm:"not null;default:false"`

	// CreatedAt defines display order, newest first.
	CreatedAt time.Time `gorm:"index"`

	Actor User `gorm:"foreignKey:ActorID;references:ID;constraint:OnDelete:CASCADE;"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
