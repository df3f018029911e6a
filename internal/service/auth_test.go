package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apurvavyas7/CineSuggest/internal/domain"
	domainerrors "github.com/apurvavyas7/CineSuggest/internal/errors"
)

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv(t)

	resp, err := env.auth.Register(context.Background(), RegisterRequest{
		Username: "apurva",
		Password: "correcthorse",
	})
	require.NoError(t, err)

	assert.Equal(t, "apurva", resp.User.Username)
	assert.False(t, resp.User.IsAdmin)
	assert.False(t, resp.User.HasCompletedSurvey)
	assert.Equal(t, domain.DefaultAvatar, resp.User.AvatarPath)

	// Registration logs the user in immediately
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.NotEmpty(t, resp.SessionID)
	assert.Greater(t, resp.ExpiresIn, 0)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "apurva")

	_, err := env.auth.Register(context.Background(), RegisterRequest{
		Username: "APURVA",
		Password: "correcthorse",
	})
	requireCode(t, err, domainerrors.CodeAlreadyExists)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Register(context.Background(), RegisterRequest{
		Username: "apurva",
		Password: "short",
	})
	requireCode(t, err, domainerrors.CodeValidation)
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "apurva")

	resp, err := env.auth.Login(context.Background(), LoginRequest{
		Username: "apurva",
		Password: "correcthorse",
	})
	require.NoError(t, err)
	assert.Equal(t, "apurva", resp.User.Username)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	env := newTestEnv(t)
	registerUser(t, env, "apurva")

	_, err := env.auth.Login(context.Background(), LoginRequest{
		Username: "apurva",
		Password: "wrongpassword",
	})
	requireCode(t, err, domainerrors.CodeInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Login(context.Background(), LoginRequest{
		Username: "nobody",
		Password: "correcthorse",
	})
	// Same error as a wrong password so usernames can't be probed
	requireCode(t, err, domainerrors.CodeInvalidCredentials)
}

func TestAuthService_RefreshTokens_Rotation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := registerUser(t, env, "apurva")

	refreshed, err := env.auth.RefreshTokens(ctx, RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, registered.SessionID, refreshed.SessionID)

	// The old refresh token is dead after rotation
	_, err = env.auth.RefreshTokens(ctx, RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	requireCode(t, err, domainerrors.CodeTokenExpired)

	// The new one still works
	_, err = env.auth.RefreshTokens(ctx, RefreshRequest{
		RefreshToken: refreshed.RefreshToken,
	})
	require.NoError(t, err)
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := registerUser(t, env, "apurva")

	require.NoError(t, env.auth.Logout(ctx, registered.SessionID))

	_, err := env.auth.RefreshTokens(ctx, RefreshRequest{
		RefreshToken: registered.RefreshToken,
	})
	requireCode(t, err, domainerrors.CodeTokenExpired)
}

func TestAuthService_VerifyAccessToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := registerUser(t, env, "apurva")

	user, claims, err := env.auth.VerifyAccessToken(ctx, registered.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, user.ID)
	assert.Equal(t, registered.User.ID, claims.UserID)
	assert.Equal(t, "apurva", claims.Username)
	assert.False(t, claims.IsAdmin)
}

func TestAuthService_VerifyAccessToken_Garbage(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.VerifyAccessToken(context.Background(), "not-a-token")
	requireCode(t, err, domainerrors.CodeUnauthorized)
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := registerUser(t, env, "apurva")

	err := env.auth.ChangePassword(ctx, registered.User.ID, "correcthorse", "batterystaple")
	require.NoError(t, err)

	_, err = env.auth.Login(ctx, LoginRequest{Username: "apurva", Password: "correcthorse"})
	requireCode(t, err, domainerrors.CodeInvalidCredentials)

	_, err = env.auth.Login(ctx, LoginRequest{Username: "apurva", Password: "batterystaple"})
	require.NoError(t, err)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	env := newTestEnv(t)
	registered := registerUser(t, env, "apurva")

	err := env.auth.ChangePassword(context.Background(), registered.User.ID, "wrongpassword", "batterystaple")
	requireCode(t, err, domainerrors.CodeInvalidCredentials)
}

func TestSessionService_DeleteExpiredSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	registered := registerUser(t, env, "apurva")

	// Fresh sessions survive the sweep
	count, err := env.sessions.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	sessions, err := env.sessions.ListUserSessions(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}
