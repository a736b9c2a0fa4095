package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderService_Broadcasts(t *testing.T) {
	ctx := context.Background()

	t.Run("silent when nothing is scheduled", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		_, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		require.NoError(t, err)

		broadcasts, err := env.reminders.Broadcasts(ctx, time.Now())
		require.NoError(t, err)
		assert.Empty(t, broadcasts)
	})

	t.Run("targets every member of a group with upcoming activities", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		group, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		require.NoError(t, err)

		_, err = env.activities.CreateActivity(ctx, 1, ActivityInput{
			GroupRef:     group.Name,
			Title:        "Sessão de improviso",
			ScheduledFor: time.Now().Add(time.Hour),
		})
		require.NoError(t, err)

		env.registerAutistic(t, 42, "Ana")
		env.registerAutistic(t, 43, "Bruno")
		env.registerAutistic(t, 44, "Carla") // never joins
		for _, id := range []int64{42, 43} {
			_, err := env.groups.JoinGroup(ctx, id, group.Name)
			require.NoError(t, err)
		}

		broadcasts, err := env.reminders.Broadcasts(ctx, time.Now())
		require.NoError(t, err)
		require.Len(t, broadcasts, 2)

		targets := map[int64]bool{}
		for _, broadcast := range broadcasts {
			targets[broadcast.ChatID] = true
			assert.Contains(t, broadcast.Text, "Sessão de improviso")
			assert.Contains(t, broadcast.Text, "Música")
		}
		assert.True(t, targets[42])
		assert.True(t, targets[43])
		assert.False(t, targets[44])
	})
}

func TestReminderService_UpcomingDigest(t *testing.T) {
	ctx := context.Background()

	t.Run("lists only future activities", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		group, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		require.NoError(t, err)

		now := time.Now()
		_, err = env.activities.CreateActivity(ctx, 1, ActivityInput{
			GroupRef:     group.Name,
			Title:        "Sessão de improviso",
			ScheduledFor: now.Add(time.Hour),
			Duration:     45,
		})
		require.NoError(t, err)

		digest, err := env.reminders.UpcomingDigest(ctx, *group, now)
		require.NoError(t, err)
		assert.Contains(t, digest, "Sessão de improviso")
		assert.Contains(t, digest, "45 min")

		// Two hours later the activity has passed.
		digest, err = env.reminders.UpcomingDigest(ctx, *group, now.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, digest)
	})
}
