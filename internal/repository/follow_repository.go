package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pixelgram/backend/internal/models"
)

// FollowRepository persists follow relationships. The (follower, following)
// pair is the primary key, so the store enforces at-most-one row per pair.
type FollowRepository interface {
	// Get returns the follow row for a pair, or nil when no relationship exists.
	Get(ctx context.Context, followerID, followingID string) (*models.Follow, error)

	// CreateIfAbsent inserts a row with the given status unless the pair
	// already exists. It reports whether the insert happened. This is a single
	// conditional insert so two concurrent follows cannot both create the row.
	CreateIfAbsent(ctx context.Context, followerID, followingID string, status models.FollowStatus) (bool, error)

	// Delete removes the relationship regardless of status. Deleting an absent
	// row is a harmless no-op.
	Delete(ctx context.Context, followerID, followingID string) error

	// AcceptPending flips a pending row to accepted. It reports whether a
	// pending row was actually updated.
	AcceptPending(ctx context.Context, followerID, followingID string) (bool, error)

	// DeletePending removes a pending row. It reports whether a pending row
	// was actually deleted.
	DeletePending(ctx context.Context, followerID, followingID string) (bool, error)

	// CountFollowers counts accepted followers of a user.
	CountFollowers(ctx context.Context, userID string) (int64, error)

	// CountFollowing counts users a user actively follows.
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Get(ctx context.Context, followerID, followingID string) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *followRepository) CreateIfAbsent(ctx context.Context, followerID, followingID string, status models.FollowStatus) (bool, error) {
	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
		Status:      status,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&follow)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *followRepository) AcceptPending(ctx context.Context, followerID, followingID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, models.StatusPending).
		Update("status", models.StatusAccepted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) DeletePending(ctx context.Context, followerID, followingID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, models.StatusPending).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("following_id = ? AND status = ?", userID, models.StatusAccepted).
		Count(&cnt).Error
	return cnt, err
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.StatusAccepted).
		Count(&cnt).Error
	return cnt, err
}
