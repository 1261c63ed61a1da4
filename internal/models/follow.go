package models

import "time"

// FollowStatus defines the state of a follow relationship.
type FollowStatus string

const (
	// StatusPending means the target account is private and has not yet
	// approved the follow request.
	StatusPending FollowStatus = "pending"

	// StatusAccepted means the follower is actively following the target.
	StatusAccepted FollowStatus = "accepted"
)

// Follow represents the relationship between two users. The primary key is a
// composite of (FollowerID, FollowingID) to ensure at most one row per ordered
// pair; the row's existence is the sole source of truth for the relationship.
type Follow struct {
	FollowerID  string       `gorm:"type:uuid;primaryKey"`
	FollowingID string       `gorm:"type:uuid;primaryKey"`
	Status      FollowStatus `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Follower  User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Following User `gorm:"foreignKey:FollowingID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
