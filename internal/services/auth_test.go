package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/yigyaps/yigyaps/internal/apierr"
	"github.com/yigyaps/yigyaps/internal/logger"
	"github.com/yigyaps/yigyaps/internal/requestdata"
	"github.com/yigyaps/yigyaps/internal/types"
)

func TestLoginCreatesPrincipalOnFirstUse(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.auth.Login(ctx, "newuser", "hunter2hunter2", "")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.NotEmpty(t, result.ApiKey)
	require.Equal(t, "newuser", result.User.Username)
	require.Equal(t, types.TierFree, result.User.Tier)
	require.Equal(t, types.RoleUser, result.User.Role)

	// Second login with the right password resolves the same principal.
	again, err := env.auth.Login(ctx, "newuser", "hunter2hunter2", "")
	require.NoError(t, err)
	require.Equal(t, result.User.ID, again.User.ID)

	// Wrong password never creates or authenticates.
	_, err = env.auth.Login(ctx, "newuser", "wrong-password", "")
	require.True(t, apierr.IsKind(err, apierr.KindUnauthenticated))
}

func TestLoginValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.auth.Login(ctx, "Bad Name!", "hunter2hunter2", "")
	require.True(t, apierr.IsKind(err, apierr.KindValidation))

	_, err = env.auth.Login(ctx, "shortpw", "short", "")
	require.True(t, apierr.IsKind(err, apierr.KindValidation))
}

func TestBearerDispatchTokenAndApiKey(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result, err := env.auth.Login(ctx, "dualcred", "hunter2hunter2", "")
	require.NoError(t, err)

	// Session token path.
	authed, err := env.auth.SetContextFromBearer(ctx, result.Token)
	require.NoError(t, err)
	rd := requestdata.GetRequestData(authed)
	require.NotNil(t, rd)
	require.Equal(t, result.User.ID, rd.UserID)

	// API key path.
	authed, err = env.auth.SetContextFromBearer(ctx, result.ApiKey)
	require.NoError(t, err)
	rd = requestdata.GetRequestData(authed)
	require.NotNil(t, rd)
	require.Equal(t, result.User.ID, rd.UserID)

	// Garbage is rejected without a panic.
	_, err = env.auth.SetContextFromBearer(ctx, "yy_not_a_real_key")
	require.True(t, apierr.IsKind(err, apierr.KindUnauthenticated))
	_, err = env.auth.SetContextFromBearer(ctx, "")
	require.True(t, apierr.IsKind(err, apierr.KindUnauthenticated))
}

func TestExpiredTokenIsUnauthenticated(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// A service with a negative TTL signs already-expired tokens.
	expiredAuth := NewAuthService(env.db, logger.NewNop(), env.userRepo, env.apiKeyRepo, "test-secret", -time.Minute, 24*time.Hour)
	result, err := expiredAuth.Login(ctx, "expired", "hunter2hunter2", "")
	require.NoError(t, err)

	_, err = env.auth.SetContextFromBearer(ctx, result.Token)
	require.True(t, apierr.IsKind(err, apierr.KindUnauthenticated))
}

func TestTokenSignedWithWrongKeyIsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "victim", types.TierFree, types.RoleUser)
	claims := Claims{
		Tier: types.TierLegendary,
		Role: types.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("attacker-secret"))
	require.NoError(t, err)

	_, err = env.auth.SetContextFromBearer(ctx, forged)
	require.True(t, apierr.IsKind(err, apierr.KindUnauthenticated))
}

func TestGetMe(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "me", types.TierPro, types.RoleUser)

	me, err := env.user.GetMe(ctxFor(user))
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)
	require.Equal(t, types.TierPro, me.Tier)

	_, err = env.user.GetMe(context.Background())
	require.True(t, apierr.IsKind(err, apierr.KindUnauthenticated))
}
