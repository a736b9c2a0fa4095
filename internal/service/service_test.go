package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"auticonnect/internal/model"
	"auticonnect/internal/repository"
)

type testEnv struct {
	identity   *IdentityService
	groups     *GroupService
	activities *ActivityService
	reminders  *ReminderService
	userRepo   *repository.UserRepository
	groupRepo  *repository.GroupRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.NewDB(":memory:")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	identity := NewIdentityService(userRepo)
	groups := NewGroupService(identity, groupRepo, userRepo)
	activities := NewActivityService(identity, groups, activityRepo)
	reminders := NewReminderService(activityRepo, groupRepo, userRepo)

	return &testEnv{
		identity:   identity,
		groups:     groups,
		activities: activities,
		reminders:  reminders,
		userRepo:   userRepo,
		groupRepo:  groupRepo,
	}
}

func (e *testEnv) registerAT(t *testing.T, telegramID int64, name string) *model.User {
	t.Helper()
	user, err := e.identity.Register(context.Background(), telegramID, name, model.RoleAT)
	require.NoError(t, err)
	return user
}

func (e *testEnv) registerAutistic(t *testing.T, telegramID int64, name string) *model.User {
	t.Helper()
	user, err := e.identity.Register(context.Background(), telegramID, name, model.RoleAutistic)
	require.NoError(t, err)
	return user
}
