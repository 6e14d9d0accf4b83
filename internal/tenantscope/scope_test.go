package tenantscope

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantctx"
	"gorm.io/gorm"
)

type scopedRow struct {
	ID       int64 `gorm:"primaryKey"`
	TenantID int64
	Name     string
}

func setupScopeDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&scopedRow{}))

	rows := []scopedRow{
		{ID: 1, TenantID: 10, Name: "a1"},
		{ID: 2, TenantID: 10, Name: "a2"},
		{ID: 3, TenantID: 20, Name: "b1"},
	}
	require.NoError(t, db.Create(&rows).Error)
	return db
}

func idPtr(v int64) *snowflake.ID {
	id := snowflake.ID(v)
	return &id
}

func names(t *testing.T, db *gorm.DB, scope Scope) []string {
	t.Helper()
	var out []string
	require.NoError(t, scope.Apply(db.Model(&scopedRow{})).Order("id").Pluck("name", &out).Error)
	return out
}

func TestStaffSeesOwnTenantOnly(t *testing.T) {
	db := setupScopeDB(t)
	scope := ForIdentity(&tenantctx.Identity{
		UserID:   1,
		TenantID: idPtr(10),
		Role:     accountdomain.RoleStaff,
	})
	assert.Equal(t, []string{"a1", "a2"}, names(t, db, scope))
}

func TestSuperAdminSeesEverything(t *testing.T) {
	db := setupScopeDB(t)
	scope := ForIdentity(&tenantctx.Identity{
		UserID: 1,
		Role:   accountdomain.RoleSuperAdmin,
	})
	assert.True(t, scope.Unrestricted())
	assert.Equal(t, []string{"a1", "a2", "b1"}, names(t, db, scope))
}

func TestSwitchedSuperAdminSeesSwitchedTenantOnly(t *testing.T) {
	db := setupScopeDB(t)
	scope := ForIdentity(&tenantctx.Identity{
		UserID:           1,
		Role:             accountdomain.RoleSuperAdmin,
		SwitchedTenantID: idPtr(20),
	})
	assert.Equal(t, []string{"b1"}, names(t, db, scope))
}

func TestMissingTenantFailsClosed(t *testing.T) {
	db := setupScopeDB(t)

	// Staff account with no tenant: matches nothing.
	scope := ForIdentity(&tenantctx.Identity{UserID: 1, Role: accountdomain.RoleStaff})
	assert.Empty(t, names(t, db, scope))

	// Nil identity and the zero Scope behave the same.
	assert.Empty(t, names(t, db, ForIdentity(nil)))
	assert.Empty(t, names(t, db, Scope{}))
}

func TestForContextPrefersOverride(t *testing.T) {
	db := setupScopeDB(t)
	ctx := tenantctx.WithIdentity(context.Background(), &tenantctx.Identity{
		UserID:   1,
		TenantID: idPtr(10),
		Role:     accountdomain.RoleStaff,
	})

	assert.Equal(t, []string{"a1", "a2"}, names(t, db, ForContext(ctx)))

	err := tenantctx.RunAs(ctx, 20, func(inner context.Context) error {
		assert.Equal(t, []string{"b1"}, names(t, db, ForContext(inner)))
		return nil
	})
	require.NoError(t, err)

	// Back outside RunAs the view is the identity's own again.
	assert.Equal(t, []string{"a1", "a2"}, names(t, db, ForContext(ctx)))
}

func TestForContextWithoutIdentityMatchesNothing(t *testing.T) {
	db := setupScopeDB(t)
	assert.Empty(t, names(t, db, ForContext(context.Background())))
}

func TestApplyColumn(t *testing.T) {
	db := setupScopeDB(t)

	var out []string
	err := ForTenant(1).ApplyColumn(db.Model(&scopedRow{}), "id").Pluck("name", &out).Error
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, out)
}

func TestSystemScopeIsUnrestricted(t *testing.T) {
	db := setupScopeDB(t)
	assert.Equal(t, []string{"a1", "a2", "b1"}, names(t, db, System("test sweep")))
}
