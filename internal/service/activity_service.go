package service

import (
	"context"
	"strings"
	"time"

	"auticonnect/internal/model"
	"auticonnect/internal/repository"
)

// scheduleGrace tolerates the minute or two an AT spends typing the command.
const scheduleGrace = 2 * time.Minute

// ActivityInput represents data required to schedule an activity.
type ActivityInput struct {
	GroupRef     string
	Title        string
	Description  string
	ScheduledFor time.Time
	Duration     int // minutes
}

// ActivityService wraps activity-related business logic. Creation is AT-only
// and always scoped to an existing group.
type ActivityService struct {
	identity     *IdentityService
	groups       *GroupService
	activityRepo *repository.ActivityRepository
}

func NewActivityService(identity *IdentityService, groups *GroupService, activityRepo *repository.ActivityRepository) *ActivityService {
	return &ActivityService{identity: identity, groups: groups, activityRepo: activityRepo}
}

// CreateActivity persists a new activity for the calling AT. The referenced
// group must exist and the scheduled time must not be clearly past.
func (s *ActivityService) CreateActivity(ctx context.Context, creatorID int64, input ActivityInput) (*model.Activity, error) {
	creator, err := s.identity.Authorize(ctx, creatorID, model.RoleAT)
	if err != nil {
		return nil, err
	}

	group, err := s.groups.resolveGroup(ctx, input.GroupRef)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidActivity
	}

	if input.ScheduledFor.Before(time.Now().Add(-scheduleGrace)) {
		return nil, ErrInvalidSchedule
	}

	activity := model.Activity{
		GroupID:      group.ID,
		Title:        title,
		Description:  strings.TrimSpace(input.Description),
		ScheduledFor: input.ScheduledFor,
		Duration:     input.Duration,
		CreatedBy:    creator.TelegramID,
	}

	if err := s.activityRepo.Create(ctx, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListUpcoming returns the caller's group's activities whose scheduled time
// has not passed, soonest first. The caller must belong to a group.
func (s *ActivityService) ListUpcoming(ctx context.Context, telegramID int64) ([]model.Activity, error) {
	user, err := s.identity.Lookup(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if user.GroupID == nil {
		return nil, ErrNoGroup
	}
	return s.activityRepo.ListUpcomingByGroup(ctx, *user.GroupID, time.Now())
}

// ListUpcomingByGroup is the reminder loop's view: upcoming activities of a
// specific group regardless of caller.
func (s *ActivityService) ListUpcomingByGroup(ctx context.Context, groupID uint, now time.Time) ([]model.Activity, error) {
	return s.activityRepo.ListUpcomingByGroup(ctx, groupID, now)
}
