package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	accountrepo "github.com/subarna00/restrovibe-backend-sub001/internal/account/repository"
	menudomain "github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	restaurantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	tabledomain "github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	tenantrepo "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/repository"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTenantService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Tenant{},
		&accountdomain.User{},
		&restaurantdomain.Restaurant{},
		&menudomain.MenuCategory{},
		&menudomain.MenuItem{},
		&tabledomain.TableCategory{},
		&tabledomain.Table{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(zap.NewNop(), db, tenantrepo.NewRepository(db), accountrepo.NewRepository(db), node)
	return svc, db
}

func acmeRequest() domain.CreateTenantRequest {
	return domain.CreateTenantRequest{
		Name: "Acme",
		Plan: domain.PlanBasic,
		Owner: domain.OwnerRequest{
			Name:     "Ada Owner",
			Email:    "owner@acme.test",
			Password: "secret123",
		},
	}
}

func TestCreateTenantWithOwner(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, acmeRequest())
	require.NoError(t, err)

	assert.Equal(t, "acme", result.Tenant.Slug)
	assert.Equal(t, domain.StatusActive, result.Tenant.Status)
	assert.Equal(t, domain.SubscriptionActive, result.Tenant.SubscriptionStatus)

	require.NotNil(t, result.Owner.TenantID)
	assert.Equal(t, result.Tenant.ID, *result.Owner.TenantID)
	assert.Equal(t, accountdomain.RoleRestaurantOwner, result.Owner.Role)
	assert.Equal(t, "owner@acme.test", result.Owner.Email)
	assert.NotEqual(t, "secret123", result.Owner.PasswordHash)

	var owner accountdomain.User
	require.NoError(t, db.First(&owner, "email = ?", "owner@acme.test").Error)
	assert.Equal(t, result.Owner.ID, owner.ID)
}

func TestCreateSlugCollisionIsAtomic(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, acmeRequest())
	require.NoError(t, err)

	second := acmeRequest()
	second.Owner.Email = "second@acme.test"
	_, err = svc.Create(ctx, second)
	assert.ErrorIs(t, err, domain.ErrSlugTaken)

	// The failed transaction left no orphan owner behind.
	var count int64
	require.NoError(t, db.Model(&accountdomain.User{}).Where("email = ?", "second@acme.test").Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRetriesSlugWhenAsked(t *testing.T) {
	svc, _ := setupTenantService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, acmeRequest())
	require.NoError(t, err)

	second := acmeRequest()
	second.Owner.Email = "second@acme.test"
	second.RetrySlug = true

	result, err := svc.Create(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "acme-2", result.Tenant.Slug)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := setupTenantService(t)
	ctx := context.Background()

	req := acmeRequest()
	req.Name = "  "
	_, err := svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	req = acmeRequest()
	req.Plan = "platinum"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, domain.ErrInvalidPlan)

	req = acmeRequest()
	req.Owner.Password = "short"
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, accountdomain.ErrInvalidPassword)
}

func TestSuspendAndActivate(t *testing.T) {
	svc, _ := setupTenantService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, acmeRequest())
	require.NoError(t, err)
	id := result.Tenant.ID

	require.NoError(t, svc.Suspend(ctx, id))
	tenant, err := svc.GetByID(ctx, tenantscope.ForTenant(id), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusSuspended, tenant.Status)

	require.NoError(t, svc.Activate(ctx, id))
	tenant, err = svc.GetByID(ctx, tenantscope.ForTenant(id), id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, tenant.Status)

	assert.ErrorIs(t, svc.Suspend(ctx, snowflake.ID(999)), domain.ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	svc, db := setupTenantService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, acmeRequest())
	require.NoError(t, err)
	tenantID := result.Tenant.ID

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	restaurant := restaurantdomain.Restaurant{
		ID:            node.Generate(),
		TenantID:      tenantID,
		Name:          "Acme Diner",
		Slug:          "acme-diner",
		Status:        restaurantdomain.StatusActive,
		BusinessHours: map[string]any{},
		Settings:      map[string]any{},
	}
	require.NoError(t, db.Create(&restaurant).Error)
	item := menudomain.MenuItem{
		ID:           node.Generate(),
		TenantID:     tenantID,
		RestaurantID: restaurant.ID,
		Name:         "Burger",
		Slug:         "burger",
		Price:        9.5,
		Variants:     map[string]any{},
	}
	require.NoError(t, db.Create(&item).Error)

	require.NoError(t, svc.Delete(ctx, tenantID))

	// Soft deleted: default queries no longer see any of it.
	var count int64
	require.NoError(t, db.Model(&domain.Tenant{}).Where("id = ?", tenantID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&accountdomain.User{}).Where("tenant_id = ?", tenantID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&restaurantdomain.Restaurant{}).Where("tenant_id = ?", tenantID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&menudomain.MenuItem{}).Where("tenant_id = ?", tenantID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(ctx, tenantID), domain.ErrNotFound)
}

func TestListScopesTenants(t *testing.T) {
	svc, _ := setupTenantService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, acmeRequest())
	require.NoError(t, err)

	other := acmeRequest()
	other.Name = "Bistro"
	other.Owner.Email = "owner@bistro.test"
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	page := pagination.Params{Page: 1, PerPage: 10}

	all, total, err := svc.List(ctx, tenantscope.System("test listing"), page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	scoped, total, err := svc.List(ctx, tenantscope.ForTenant(first.Tenant.ID), page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, scoped, 1)
	assert.Equal(t, first.Tenant.ID, scoped[0].ID)
}

func TestUpdateTenant(t *testing.T) {
	svc, _ := setupTenantService(t)
	ctx := context.Background()

	result, err := svc.Create(ctx, acmeRequest())
	require.NoError(t, err)
	id := result.Tenant.ID

	newName := "Acme Group"
	newPlan := domain.PlanEnterprise
	expires := time.Now().UTC().Add(30 * 24 * time.Hour)
	tenant, err := svc.Update(ctx, tenantscope.ForTenant(id), id, domain.UpdateTenantRequest{
		Name:                  &newName,
		Plan:                  &newPlan,
		SubscriptionExpiresAt: &expires,
		Settings:              map[string]any{"currency": "USD"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Group", tenant.Name)
	assert.Equal(t, domain.PlanEnterprise, tenant.Plan)
	require.NotNil(t, tenant.SubscriptionExpiresAt)
	assert.Equal(t, "USD", tenant.Settings["currency"])
}
