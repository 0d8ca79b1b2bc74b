// Eyedea | 2026
// jwt_test.go

package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/philtech/eyedea/internal/config"
	"github.com/philtech/eyedea/internal/core"
)

func newTestManager(t *testing.T, accessExpire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	cfg := config.JWTConfig{
		PrivateKeyPath:    filepath.Join(dir, "jwt_private.pem"),
		PublicKeyPath:     filepath.Join(dir, "jwt_public.pem"),
		AccessTokenExpire: accessExpire,
		ResetTokenExpire:  time.Hour,
		Issuer:            "eyedea",
		Audience:          "eyedea-api",
	}

	require.NoError(t, GenerateKeyPair(cfg.PrivateKeyPath, cfg.PublicKeyPath))

	manager, err := NewJWTManager(cfg)
	require.NoError(t, err)
	return manager
}

func TestAccessTokenRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID:  "u-1",
		Role:    "approver",
		SubRole: "ci_excellence",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.VerifyAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", claims.UserID)
	require.Equal(t, "approver", claims.Role)
	require.Equal(t, "ci_excellence", claims.SubRole)
}

func TestAccessTokenWithoutSubRole(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "u-2",
		Role:   "user",
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(token)
	require.NoError(t, err)
	require.Empty(t, claims.SubRole)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	token, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "u-1",
		Role:   "user",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(token)
	require.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestGarbageTokenRejected(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	_, err := manager.VerifyAccessToken("not.a.token")
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestTokenFromDifferentKeyRejected(t *testing.T) {
	manager := newTestManager(t, time.Hour)
	other := newTestManager(t, time.Hour)

	token, err := other.CreateAccessToken(AccessTokenClaims{
		UserID: "u-1",
		Role:   "user",
	})
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(token)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestPasswordResetTokenRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.CreatePasswordResetToken("u-1", "user1@philtech.com")
	require.NoError(t, err)

	userID, email, err := manager.VerifyPasswordResetToken(token)
	require.NoError(t, err)
	require.Equal(t, "u-1", userID)
	require.Equal(t, "user1@philtech.com", email)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	resetToken, err := manager.CreatePasswordResetToken("u-1", "user1@philtech.com")
	require.NoError(t, err)

	_, err = manager.VerifyAccessToken(resetToken)
	require.ErrorIs(t, err, core.ErrTokenInvalid)

	accessToken, err := manager.CreateAccessToken(AccessTokenClaims{
		UserID: "u-1",
		Role:   "user",
	})
	require.NoError(t, err)

	_, _, err = manager.VerifyPasswordResetToken(accessToken)
	require.ErrorIs(t, err, core.ErrTokenInvalid)
}
