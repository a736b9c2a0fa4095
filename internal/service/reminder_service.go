package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"auticonnect/internal/model"
	"auticonnect/internal/repository"
)

// ReminderService builds human-readable summaries of upcoming activities
// for the periodic group broadcast.
type ReminderService struct {
	activityRepo *repository.ActivityRepository
	groupRepo    *repository.GroupRepository
	userRepo     *repository.UserRepository
}

func NewReminderService(activityRepo *repository.ActivityRepository, groupRepo *repository.GroupRepository, userRepo *repository.UserRepository) *ReminderService {
	return &ReminderService{activityRepo: activityRepo, groupRepo: groupRepo, userRepo: userRepo}
}

// Broadcast is one reminder message addressed to one member.
type Broadcast struct {
	ChatID int64
	Text   string
}

// Broadcasts builds the reminder messages for every group that has
// upcoming activities, one per current member.
func (s *ReminderService) Broadcasts(ctx context.Context, now time.Time) ([]Broadcast, error) {
	groups, err := s.groupRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var broadcasts []Broadcast
	for _, group := range groups {
		digest, err := s.UpcomingDigest(ctx, group, now)
		if err != nil {
			return nil, err
		}
		if digest == "" {
			continue
		}
		members, err := s.userRepo.ListByGroup(ctx, group.ID)
		if err != nil {
			return nil, err
		}
		for _, member := range members {
			broadcasts = append(broadcasts, Broadcast{ChatID: member.TelegramID, Text: digest})
		}
	}
	return broadcasts, nil
}

// UpcomingDigest renders the group's upcoming activities. It returns an
// empty string when there is nothing scheduled, so callers can skip the
// message entirely.
func (s *ReminderService) UpcomingDigest(ctx context.Context, group model.Group, now time.Time) (string, error) {
	activities, err := s.activityRepo.ListUpcomingByGroup(ctx, group.ID, now)
	if err != nil {
		return "", err
	}
	if len(activities) == 0 {
		return "", nil
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("🔔 <b>Lembrete do grupo %s</b>\n", html.EscapeString(group.Name)))
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("02/01/2006")))
	builder.WriteString("📅 <b>Próximas atividades</b>\n")
	for _, activity := range activities {
		builder.WriteString(FormatActivity(activity, now))
	}

	return strings.TrimSpace(builder.String()), nil
}

// FormatActivity renders one activity line for lists and reminders.
func FormatActivity(activity model.Activity, now time.Time) string {
	var sb strings.Builder

	when := activity.ScheduledFor.In(now.Location())
	icon := "🟢"
	if when.Sub(now) <= 24*time.Hour {
		icon = "⏳"
	}

	sb.WriteString(fmt.Sprintf("%s <b>%s</b>\n", icon, html.EscapeString(strings.TrimSpace(activity.Title))))
	sb.WriteString(fmt.Sprintf("   ⏰ %s", when.Format("02/01/2006 15:04")))
	if activity.Duration > 0 {
		sb.WriteString(fmt.Sprintf(" · %d min", activity.Duration))
	}
	sb.WriteByte('\n')
	if activity.Description != "" {
		sb.WriteString(fmt.Sprintf("   📝 %s\n", html.EscapeString(strings.TrimSpace(activity.Description))))
	}
	sb.WriteByte('\n')
	return sb.String()
}
