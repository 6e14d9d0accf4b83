package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subarna00/restrovibe-backend-sub001/internal/token/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTokenService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AccessToken{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return NewService(zap.NewNop(), db, node), db
}

func TestIssuePairAndAuthenticate(t *testing.T) {
	svc, _ := setupTokenService(t)
	ctx := context.Background()
	userID := snowflake.ID(42)

	pair, err := svc.IssuePair(ctx, userID, domain.AudienceTenant)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	token, err := svc.Authenticate(ctx, pair.AccessToken, domain.AbilityAccess)
	require.NoError(t, err)
	assert.Equal(t, userID, token.UserID)
	assert.Equal(t, domain.AudienceTenant, token.Audience())
	assert.NotNil(t, token.LastUsedAt)

	// The access token does not carry the refresh ability and vice versa.
	_, err = svc.Authenticate(ctx, pair.AccessToken, domain.AbilityRefresh)
	assert.ErrorIs(t, err, domain.ErrWrongAbility)
	_, err = svc.Authenticate(ctx, pair.RefreshToken, domain.AbilityAccess)
	assert.ErrorIs(t, err, domain.ErrWrongAbility)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc, _ := setupTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, 42, domain.AudienceMobile)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "not-a-token", domain.AbilityAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	_, err = svc.Authenticate(ctx, pair.AccessToken+"tampered", domain.AbilityAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestRefreshRotatesThePair(t *testing.T) {
	svc, _ := setupTokenService(t)
	ctx := context.Background()

	first, err := svc.IssuePair(ctx, 42, domain.AudienceTenant)
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Replaying the consumed refresh token fails: rotation revoked it.
	_, err = svc.Refresh(ctx, first.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// The old access token died with the rotation too.
	_, err = svc.Authenticate(ctx, first.AccessToken, domain.AbilityAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	// The new pair works.
	_, err = svc.Authenticate(ctx, second.AccessToken, domain.AbilityAccess)
	assert.NoError(t, err)
}

func TestRefreshRequiresRefreshAbility(t *testing.T) {
	svc, _ := setupTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, 42, domain.AudienceTenant)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrWrongAbility)
}

func TestRevokePairRevokesBothTokens(t *testing.T) {
	svc, _ := setupTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, 42, domain.AudienceAdmin)
	require.NoError(t, err)

	require.NoError(t, svc.RevokePair(ctx, 42, domain.AudienceAdmin))

	_, err = svc.Authenticate(ctx, pair.AccessToken, domain.AbilityAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	_, err = svc.Authenticate(ctx, pair.RefreshToken, domain.AbilityRefresh)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestIssuePairReplacesPreviousAudiencePair(t *testing.T) {
	svc, db := setupTokenService(t)
	ctx := context.Background()

	first, err := svc.IssuePair(ctx, 42, domain.AudienceTenant)
	require.NoError(t, err)
	_, err = svc.IssuePair(ctx, 42, domain.AudienceTenant)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, first.AccessToken, domain.AbilityAccess)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)

	var count int64
	require.NoError(t, db.Model(&domain.AccessToken{}).Where("user_id = ?", 42).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestSetSwitchedTenant(t *testing.T) {
	svc, _ := setupTokenService(t)
	ctx := context.Background()

	pair, err := svc.IssuePair(ctx, 42, domain.AudienceAdmin)
	require.NoError(t, err)

	token, err := svc.Authenticate(ctx, pair.AccessToken, domain.AbilityAccess)
	require.NoError(t, err)
	require.Nil(t, token.SwitchedTenantID)

	tenantID := snowflake.ID(77)
	require.NoError(t, svc.SetSwitchedTenant(ctx, token.ID, &tenantID))

	token, err = svc.Authenticate(ctx, pair.AccessToken, domain.AbilityAccess)
	require.NoError(t, err)
	require.NotNil(t, token.SwitchedTenantID)
	assert.Equal(t, tenantID, *token.SwitchedTenantID)

	require.NoError(t, svc.SetSwitchedTenant(ctx, token.ID, nil))
	token, err = svc.Authenticate(ctx, pair.AccessToken, domain.AbilityAccess)
	require.NoError(t, err)
	assert.Nil(t, token.SwitchedTenantID)
}
