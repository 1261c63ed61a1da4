package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account in the system.
type User struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Username     string `gorm:"size:50;unique;not null"`
	Email        string `gorm:"size:255;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	FullName     string `gorm:"size:255"`
	Bio          string `gorm:"size:150"`
	AvatarURL    string `gorm:"size:512"`
	IsVerified   bool   `gorm:"not null;default:false"`

	// Private accounts gate new followers behind a follow request.
	IsPrivate bool `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
