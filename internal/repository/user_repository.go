package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"auticonnect/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert finds or creates a user keyed by TelegramID and updates name and
// role in place. GroupID is never touched here.
func (r *UserRepository) Upsert(ctx context.Context, telegramID int64, name string, role model.Role) (*model.User, error) {
	var user model.User
	db := r.db.WithContext(ctx)
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"name": name,
			"role": role,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		return &user, nil
	case err == gorm.ErrRecordNotFound:
		user = model.User{
			TelegramID: telegramID,
			Name:       name,
			Role:       role,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		return &user, nil
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetGroup moves the user into the given group (a user belongs to at most one).
func (r *UserRepository) SetGroup(ctx context.Context, userID uint, groupID uint) error {
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userID).
		Update("group_id", groupID).Error; err != nil {
		return fmt.Errorf("set group: %w", err)
	}
	return nil
}

func (r *UserRepository) ListByGroup(ctx context.Context, groupID uint) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("group_id = ?", groupID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
