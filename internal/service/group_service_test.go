package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupService_CreateGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("requires the AT role and writes nothing otherwise", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAutistic(t, 42, "Ana")

		_, err := env.groups.CreateGroup(ctx, 42, GroupInput{Name: "Arte"})
		assert.ErrorIs(t, err, ErrForbidden)

		infos, err := env.groups.ListGroups(ctx)
		require.NoError(t, err)
		assert.Empty(t, infos)
	})

	t.Run("rejects unregistered creators", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.groups.CreateGroup(ctx, 99, GroupInput{Name: "Arte"})
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		_, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "   "})
		assert.ErrorIs(t, err, ErrInvalidGroup)
	})

	t.Run("rejects duplicate names keeping a single entry", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")

		_, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		require.NoError(t, err)

		_, err = env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		assert.ErrorIs(t, err, ErrDuplicateGroup)

		infos, err := env.groups.ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, "Música", infos[0].Group.Name)
	})

	t.Run("records creator, theme and default capacity", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")

		group, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Jogos", Theme: "Jogos de tabuleiro"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), group.CreatedBy)
		assert.Equal(t, "Jogos de tabuleiro", group.Theme)
		assert.Equal(t, defaultMaxMembers, group.MaxMembers)
	})
}

func TestGroupService_ListGroups(t *testing.T) {
	ctx := context.Background()

	t.Run("returns groups in creation order", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")

		for _, name := range []string{"Música", "Arte", "Jogos"} {
			_, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: name})
			require.NoError(t, err)
		}

		infos, err := env.groups.ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 3)
		assert.Equal(t, "Música", infos[0].Group.Name)
		assert.Equal(t, "Arte", infos[1].Group.Name)
		assert.Equal(t, "Jogos", infos[2].Group.Name)
	})

	t.Run("counts current members", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		group, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		require.NoError(t, err)

		env.registerAutistic(t, 42, "Ana")
		env.registerAutistic(t, 43, "Bruno")
		for _, id := range []int64{42, 43} {
			_, err := env.groups.JoinGroup(ctx, id, group.Name)
			require.NoError(t, err)
		}

		infos, err := env.groups.ListGroups(ctx)
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, int64(2), infos[0].Members)
	})
}

func TestGroupService_JoinGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown group", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAutistic(t, 42, "Ana")
		_, err := env.groups.JoinGroup(ctx, 42, "Fantasma")
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})

	t.Run("unregistered caller", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.groups.JoinGroup(ctx, 99, "Música")
		assert.ErrorIs(t, err, ErrNotRegistered)
	})

	t.Run("joining again is a no-op", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		group, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música", MaxMembers: 1})
		require.NoError(t, err)

		env.registerAutistic(t, 42, "Ana")
		_, err = env.groups.JoinGroup(ctx, 42, group.Name)
		require.NoError(t, err)

		// Full group, but Ana is already inside.
		_, err = env.groups.JoinGroup(ctx, 42, group.Name)
		require.NoError(t, err)
	})

	t.Run("moves the user between groups", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		first, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		require.NoError(t, err)
		second, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Arte"})
		require.NoError(t, err)

		env.registerAutistic(t, 42, "Ana")
		_, err = env.groups.JoinGroup(ctx, 42, first.Name)
		require.NoError(t, err)
		_, err = env.groups.JoinGroup(ctx, 42, second.Name)
		require.NoError(t, err)

		user, err := env.identity.Lookup(ctx, 42)
		require.NoError(t, err)
		require.NotNil(t, user.GroupID)
		assert.Equal(t, second.ID, *user.GroupID)

		infos, err := env.groups.ListGroups(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(0), infos[0].Members)
		assert.Equal(t, int64(1), infos[1].Members)
	})

	t.Run("respects the member limit", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		group, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música", MaxMembers: 1})
		require.NoError(t, err)

		env.registerAutistic(t, 42, "Ana")
		env.registerAutistic(t, 43, "Bruno")

		_, err = env.groups.JoinGroup(ctx, 42, group.Name)
		require.NoError(t, err)

		_, err = env.groups.JoinGroup(ctx, 43, group.Name)
		assert.ErrorIs(t, err, ErrGroupFull)
	})

	t.Run("resolves numeric references as IDs", func(t *testing.T) {
		env := newTestEnv(t)
		env.registerAT(t, 1, "Marta")
		group, err := env.groups.CreateGroup(ctx, 1, GroupInput{Name: "Música"})
		require.NoError(t, err)

		env.registerAutistic(t, 42, "Ana")
		joined, err := env.groups.JoinGroup(ctx, 42, "1")
		require.NoError(t, err)
		assert.Equal(t, group.ID, joined.ID)
	})
}
