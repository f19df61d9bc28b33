package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/auth"
	"github.com/hsinyu/travelplan/internal/models"
)

func TestUserService_CreateAndUniqueness(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, UserInput{
		Username: "alice",
		Password: "s3cret",
		Name:     "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret"))

	_, err = env.users.Create(ctx, UserInput{Username: "alice", Password: "other"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestUserService_UpdatePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, UserInput{Username: "bob", Password: "old-pass"})
	require.NoError(t, err)

	// Empty password keeps the current hash.
	updated, err := env.users.Update(ctx, user.ID, UserInput{Name: "Bob"})
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(updated.PasswordHash, "old-pass"))

	updated, err = env.users.Update(ctx, user.ID, UserInput{Password: "new-pass"})
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(updated.PasswordHash, "new-pass"))
	assert.False(t, auth.CheckPassword(updated.PasswordHash, "old-pass"))
}

func TestUserService_Deactivate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.users.Create(ctx, UserInput{Username: "carol", Password: "pw"})
	require.NoError(t, err)

	inactive := false
	updated, err := env.users.Update(ctx, user.ID, UserInput{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUserService_EnsureBootstrapAdmin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.users.EnsureBootstrapAdmin(ctx, "admin", "bootpass"))

	users, err := env.users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleAdmin, users[0].Role)

	// Second call is a no-op once any user exists.
	require.NoError(t, env.users.EnsureBootstrapAdmin(ctx, "admin", "bootpass"))
	users, err = env.users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
