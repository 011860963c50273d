package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"Inkwell/internal/core/users"
)

type gormUserRepo struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed user repository
func NewUserRepository(db *gorm.DB) users.UserRepository {
	return &gormUserRepo{db: db}
}

func (r *gormUserRepo) Create(ctx context.Context, user *users.User) (*users.User, error) {
	model := userModel{Username: user.Username, Email: user.Email, Provider: user.Provider}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, r.whichConflict(ctx, user.Username)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.UID = model.UID
	user.CreatedAt = model.CreatedAt
	return user, nil
}

// whichConflict tells the two unique keys apart after a duplicate key error
func (r *gormUserRepo) whichConflict(ctx context.Context, username string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&userModel{}).Where("username = ?", username).Count(&count).Error; err == nil && count > 0 {
		return users.ErrUsernameTaken
	}
	return users.ErrProviderTaken
}

func (r *gormUserRepo) GetByUID(ctx context.Context, uid int64) (*users.User, error) {
	return r.getOne(ctx, "uid = ?", uid)
}

func (r *gormUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *gormUserRepo) GetByProvider(ctx context.Context, provider string) (*users.User, error) {
	return r.getOne(ctx, "provider = ?", provider)
}

func (r *gormUserRepo) getOne(ctx context.Context, cond string, arg interface{}) (*users.User, error) {
	var model userModel
	err := r.db.WithContext(ctx).Where(cond, arg).Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return model.toDomain(), nil
}
