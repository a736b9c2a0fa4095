package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"auticonnect/internal/model"
)

// ActivityRepository handles CRUD for activities.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(ctx context.Context, activity *model.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// ListUpcomingByGroup returns the group's activities scheduled at or after
// the given time, soonest first.
func (r *ActivityRepository) ListUpcomingByGroup(ctx context.Context, groupID uint, after time.Time) ([]model.Activity, error) {
	var activities []model.Activity
	if err := r.db.WithContext(ctx).
		Where("group_id = ? AND scheduled_for >= ?", groupID, after).
		Order("scheduled_for ASC, id ASC").
		Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
