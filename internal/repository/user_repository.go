package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"pixelgram/backend/internal/models"
)

// UserRepository persists user accounts and profile data.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetByLogin looks a user up by email or username, for login forms that
	// accept either.
	GetByLogin(ctx context.Context, login string) (*models.User, error)

	UsernameTaken(ctx context.Context, username string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)

	// Search matches usernames by case-insensitive substring.
	Search(ctx context.Context, query string, offset, limit int) ([]models.User, int64, error)

	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	return r.getBy(ctx, "email = ? OR username = ?", login, login)
}

func (r *userRepository) getBy(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where(query, args...).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *userRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where(query, args...).Count(&cnt).Error
	return cnt > 0, err
}

func (r *userRepository) Search(ctx context.Context, query string, offset, limit int) ([]models.User, int64, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("LOWER(username) LIKE ?", pattern)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	err := base.Order("username ASC").Offset(offset).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}
