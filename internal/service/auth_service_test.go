package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hsinyu/travelplan/internal/apperr"
	"github.com/hsinyu/travelplan/internal/auth"
	"github.com/hsinyu/travelplan/internal/models"
)

type mockUserFinder struct {
	users map[string]*models.User
}

func (m *mockUserFinder) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return m.users[username], nil
}

func newAuthFixture(t *testing.T) (*AuthService, *auth.TokenManager) {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse", 4)
	require.NoError(t, err)

	finder := &mockUserFinder{users: map[string]*models.User{
		"admin": {
			ID:           "u-1",
			Username:     "admin",
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			IsActive:     true,
		},
		"dormant": {
			ID:           "u-2",
			Username:     "dormant",
			PasswordHash: hash,
			Role:         models.RoleUser,
			IsActive:     false,
		},
	}}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(finder, tokens, zap.NewNop()), tokens
}

func TestAuthService_LoginSuccess(t *testing.T) {
	svc, tokens := newAuthFixture(t)

	result, err := svc.Login(context.Background(), "admin", "correct-horse")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.User.Username)

	claims, err := tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

// Unknown usernames and wrong passwords must be externally
// indistinguishable: same error kind, same message.
func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	svc, _ := newAuthFixture(t)
	ctx := context.Background()

	_, errUnknown := svc.Login(ctx, "nobody", "x")
	_, errWrongPass := svc.Login(ctx, "admin", "wrongpass")
	_, errInactive := svc.Login(ctx, "dormant", "correct-horse")

	for _, err := range []error{errUnknown, errWrongPass, errInactive} {
		require.Error(t, err)
		assert.Equal(t, apperr.KindUnauthenticated, apperr.KindOf(err))
	}
	assert.Equal(t, errUnknown.Error(), errWrongPass.Error())
	assert.Equal(t, errUnknown.Error(), errInactive.Error())
}
