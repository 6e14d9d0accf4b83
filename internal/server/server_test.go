package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	accountrepo "github.com/subarna00/restrovibe-backend-sub001/internal/account/repository"
	accountservice "github.com/subarna00/restrovibe-backend-sub001/internal/account/service"
	auditdomain "github.com/subarna00/restrovibe-backend-sub001/internal/audit/domain"
	auditrepo "github.com/subarna00/restrovibe-backend-sub001/internal/audit/repository"
	auditservice "github.com/subarna00/restrovibe-backend-sub001/internal/audit/service"
	"github.com/subarna00/restrovibe-backend-sub001/internal/config"
	menudomain "github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	menurepo "github.com/subarna00/restrovibe-backend-sub001/internal/menu/repository"
	menuservice "github.com/subarna00/restrovibe-backend-sub001/internal/menu/service"
	restaurantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	restaurantrepo "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/repository"
	restaurantservice "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/service"
	tabledomain "github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
	tablerepo "github.com/subarna00/restrovibe-backend-sub001/internal/table/repository"
	tableservice "github.com/subarna00/restrovibe-backend-sub001/internal/table/service"
	tenantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	tenantrepo "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/repository"
	tenantservice "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/service"
	tokendomain "github.com/subarna00/restrovibe-backend-sub001/internal/token/domain"
	tokenservice "github.com/subarna00/restrovibe-backend-sub001/internal/token/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnvelope struct {
	Data       map[string]any `json:"data"`
	Message    string         `json:"message"`
	Status     string         `json:"status"`
	StatusCode int            `json:"statusCode"`
}

type testServer struct {
	server *Server
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&tenantdomain.Tenant{},
		&accountdomain.User{},
		&restaurantdomain.Restaurant{},
		&menudomain.MenuCategory{},
		&menudomain.MenuItem{},
		&tabledomain.TableCategory{},
		&tabledomain.Table{},
		&tokendomain.AccessToken{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	accountRepo := accountrepo.NewRepository(db)
	s := NewServer(ServerParams{
		Gin:           gin.New(),
		Cfg:           config.Config{AppName: "restrovibe-test"},
		GenID:         node,
		AccountSvc:    accountservice.NewService(log, accountRepo, node),
		TenantSvc:     tenantservice.NewService(log, db, tenantrepo.NewRepository(db), accountRepo, node),
		TokenSvc:      tokenservice.NewService(log, db, node),
		RestaurantSvc: restaurantservice.NewService(log, db, restaurantrepo.NewRepository(db), node),
		MenuSvc:       menuservice.NewService(log, menurepo.NewRepository(db), node),
		TableSvc:      tableservice.NewService(log, tablerepo.NewRepository(db), node),
		AuditSvc:      auditservice.NewService(log, auditrepo.NewRepository(db), node),
	})
	s.engine.Use(ErrorHandlingMiddleware())
	s.RegisterRoutes()

	return &testServer{server: s, db: db}
}

func (ts *testServer) seedSuperAdmin(t *testing.T) {
	t.Helper()
	_, err := ts.server.accountSvc.Create(context.Background(), accountdomain.CreateUserRequest{
		Name:     "Platform Admin",
		Email:    "admin@test.io",
		Password: "adminpass1",
		Role:     accountdomain.RoleSuperAdmin,
	})
	require.NoError(t, err)
}

func (ts *testServer) createTenant(t *testing.T, name, ownerEmail string) *tenantdomain.CreateResult {
	t.Helper()
	result, err := ts.server.tenantSvc.Create(context.Background(), tenantdomain.CreateTenantRequest{
		Name: name,
		Plan: tenantdomain.PlanBasic,
		Owner: tenantdomain.OwnerRequest{
			Name:     "Owner",
			Email:    ownerEmail,
			Password: "secret123",
		},
	})
	require.NoError(t, err)
	return result
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.server.engine.ServeHTTP(w, req)

	var env testEnvelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func accessToken(t *testing.T, env testEnvelope) string {
	t.Helper()
	tokens, ok := env.Data["tokens"].(map[string]any)
	require.True(t, ok, "response carries no tokens: %v", env)
	raw, ok := tokens["access_token"].(string)
	require.True(t, ok)
	return raw
}

func (ts *testServer) login(t *testing.T, path, email, password string) string {
	t.Helper()
	w, env := ts.do(t, http.MethodPost, path, "", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	return accessToken(t, env)
}

func TestAdminLoginEnvelope(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSuperAdmin(t)

	w, env := ts.do(t, http.MethodPost, "/admin/auth/login", "", gin.H{
		"email":    "admin@test.io",
		"password": "adminpass1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, statusSuccess, env.Status)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.NotEmpty(t, accessToken(t, env))
}

func TestAdminLoginBadPassword(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSuperAdmin(t)

	w, env := ts.do(t, http.MethodPost, "/admin/auth/login", "", gin.H{
		"email":    "admin@test.io",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, statusFailed, env.Status)
	assert.Equal(t, http.StatusUnauthorized, env.StatusCode)
}

func TestTenantRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodGet, "/tenant/restaurants", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, statusFailed, env.Status)
}

func TestSuspendedTenantLoginForbidden(t *testing.T) {
	ts := newTestServer(t)
	result := ts.createTenant(t, "Acme", "owner@acme.test")

	require.NoError(t, ts.server.tenantSvc.Suspend(context.Background(), result.Tenant.ID))

	w, env := ts.do(t, http.MethodPost, "/tenant/auth/login", "", gin.H{
		"email":    "owner@acme.test",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, statusFailed, env.Status)
}

func TestExpiredSubscriptionForbidden(t *testing.T) {
	ts := newTestServer(t)
	result := ts.createTenant(t, "Acme", "owner@acme.test")

	token := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")

	// Tenant stays active but the subscription lapses.
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, ts.db.Model(&tenantdomain.Tenant{}).
		Where("id = ?", result.Tenant.ID).
		Update("subscription_expires_at", past).Error)

	w, env := ts.do(t, http.MethodGet, "/tenant/restaurants", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, statusFailed, env.Status)

	w, _ = ts.do(t, http.MethodPost, "/tenant/auth/login", "", gin.H{
		"email":    "owner@acme.test",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCrossTenantRestaurantFetchIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.createTenant(t, "Acme", "owner@acme.test")
	ts.createTenant(t, "Bistro", "owner@bistro.test")

	tokenA := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")
	tokenB := ts.login(t, "/tenant/auth/login", "owner@bistro.test", "secret123")

	w, env := ts.do(t, http.MethodPost, "/tenant/restaurants", tokenA, gin.H{"name": "Acme Diner"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	restaurant := env.Data["restaurant"].(map[string]any)
	restaurantID := restaurant["id"].(string)

	// The owner sees their own restaurant.
	w, _ = ts.do(t, http.MethodGet, "/tenant/restaurants/"+restaurantID, tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Another tenant's staff gets a 404, not a 403: the row does not exist
	// in their view.
	w, env = ts.do(t, http.MethodGet, "/tenant/restaurants/"+restaurantID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, statusFailed, env.Status)
}

func TestAdminSwitchScopesTenantList(t *testing.T) {
	ts := newTestServer(t)
	ts.seedSuperAdmin(t)
	acme := ts.createTenant(t, "Acme", "owner@acme.test")
	ts.createTenant(t, "Bistro", "owner@bistro.test")

	token := ts.login(t, "/admin/auth/login", "admin@test.io", "adminpass1")

	w, env := ts.do(t, http.MethodGet, "/admin/tenants", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["tenants"], 2)

	w, _ = ts.do(t, http.MethodPost, "/admin/tenants/"+acme.Tenant.ID.String()+"/switch", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, env = ts.do(t, http.MethodGet, "/admin/tenants", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tenants := env.Data["tenants"].([]any)
	require.Len(t, tenants, 1)
	assert.Equal(t, acme.Tenant.ID.String(), tenants[0].(map[string]any)["id"].(string))

	w, _ = ts.do(t, http.MethodPost, "/admin/tenants/stop-switching", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = ts.do(t, http.MethodGet, "/admin/tenants", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["tenants"], 2)

	// The switch and its end are on the audit trail.
	w, env = ts.do(t, http.MethodGet, "/admin/audit-logs", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["audit_logs"], 2)
}

func TestValidationErrorShape(t *testing.T) {
	ts := newTestServer(t)
	ts.createTenant(t, "Acme", "owner@acme.test")
	token := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")

	w, env := ts.do(t, http.MethodPost, "/tenant/restaurants", token, gin.H{"name": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, statusFailed, env.Status)
	assert.NotNil(t, env.Data["errors"])
}

func TestMobileRegisterAndBrowse(t *testing.T) {
	ts := newTestServer(t)

	w, env := ts.do(t, http.MethodPost, "/mobile/auth/register", "", gin.H{
		"business_name": "Acme",
		"name":          "Ada Owner",
		"email":         "owner@acme.test",
		"password":      "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, accessToken(t, env))

	// Same name again succeeds with a suffixed slug instead of failing.
	w, env = ts.do(t, http.MethodPost, "/mobile/auth/register", "", gin.H{
		"business_name": "Acme",
		"name":          "Bob Owner",
		"email":         "owner2@acme.test",
		"password":      "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tenant := env.Data["tenant"].(map[string]any)
	assert.Equal(t, "acme-2", tenant["slug"])

	// Public storefront listing needs no token.
	w, _ = ts.do(t, http.MethodGet, "/mobile/restaurants", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func (ts *testServer) createRestaurant(t *testing.T, token, name string) string {
	t.Helper()
	w, env := ts.do(t, http.MethodPost, "/tenant/restaurants", token, gin.H{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return env.Data["restaurant"].(map[string]any)["id"].(string)
}

func TestNestedCreateRequiresVisibleRestaurant(t *testing.T) {
	ts := newTestServer(t)
	ts.createTenant(t, "Acme", "owner@acme.test")
	ts.createTenant(t, "Bistro", "owner@bistro.test")

	tokenA := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")
	tokenB := ts.login(t, "/tenant/auth/login", "owner@bistro.test", "secret123")

	restaurantA := ts.createRestaurant(t, tokenA, "Acme Diner")

	// Another tenant's staff cannot attach anything to a restaurant they
	// cannot see. Each nested create resolves the restaurant first.
	w, _ := ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantA+"/menu/items", tokenB, gin.H{
		"name":  "Intruder Burger",
		"price": 9.5,
	})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w, _ = ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantA+"/menu/categories", tokenB, gin.H{"name": "Intruder Mains"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantA+"/tables", tokenB, gin.H{"name": "T1", "capacity": 4})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Nothing was written.
	var count int64
	require.NoError(t, ts.db.Model(&menudomain.MenuItem{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, ts.db.Model(&menudomain.MenuCategory{}).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, ts.db.Model(&tabledomain.Table{}).Count(&count).Error)
	assert.Zero(t, count)

	// And the public menu stays clean.
	w, env := ts.do(t, http.MethodGet, "/mobile/restaurants/"+restaurantA+"/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data["items"])

	// The owner can still create under their own restaurant.
	w, _ = ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantA+"/menu/items", tokenA, gin.H{
		"name":  "Burger",
		"price": 9.5,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSuspendedTenantHiddenFromStorefront(t *testing.T) {
	ts := newTestServer(t)
	acme := ts.createTenant(t, "Acme", "owner@acme.test")
	ts.createTenant(t, "Bistro", "owner@bistro.test")

	tokenA := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")
	tokenB := ts.login(t, "/tenant/auth/login", "owner@bistro.test", "secret123")

	restaurantA := ts.createRestaurant(t, tokenA, "Acme Diner")
	restaurantB := ts.createRestaurant(t, tokenB, "Bistro Cafe")

	w, env := ts.do(t, http.MethodGet, "/mobile/restaurants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["restaurants"], 2)

	require.NoError(t, ts.server.tenantSvc.Suspend(context.Background(), acme.Tenant.ID))

	// The suspended tenant's restaurant disappears from the storefront.
	w, env = ts.do(t, http.MethodGet, "/mobile/restaurants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	restaurants := env.Data["restaurants"].([]any)
	require.Len(t, restaurants, 1)
	assert.Equal(t, restaurantB, restaurants[0].(map[string]any)["id"].(string))

	w, _ = ts.do(t, http.MethodGet, "/mobile/restaurants/"+restaurantA+"/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// An inactive restaurant of an active tenant is hidden too.
	require.NoError(t, ts.db.Model(&restaurantdomain.Restaurant{}).
		Where("id = ?", restaurantB).
		Update("status", restaurantdomain.StatusInactive).Error)

	w, env = ts.do(t, http.MethodGet, "/mobile/restaurants", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data["restaurants"])

	w, _ = ts.do(t, http.MethodGet, "/mobile/restaurants/"+restaurantB+"/menu", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMenuItemPathBoundToRestaurant(t *testing.T) {
	ts := newTestServer(t)
	ts.createTenant(t, "Acme", "owner@acme.test")
	token := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")

	first := ts.createRestaurant(t, token, "Acme Diner")
	second := ts.createRestaurant(t, token, "Acme Rooftop")

	w, env := ts.do(t, http.MethodPost, "/tenant/restaurants/"+first+"/menu/items", token, gin.H{
		"name":  "Burger",
		"price": 9.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	itemID := env.Data["item"].(map[string]any)["id"].(string)

	// The item answers only under the restaurant it belongs to.
	w, _ = ts.do(t, http.MethodGet, "/tenant/restaurants/"+first+"/menu/items/"+itemID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/tenant/restaurants/"+second+"/menu/items/"+itemID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = ts.do(t, http.MethodDelete, "/tenant/restaurants/"+second+"/menu/items/"+itemID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicMenuHidesUnavailableItems(t *testing.T) {
	ts := newTestServer(t)
	ts.createTenant(t, "Acme", "owner@acme.test")
	token := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")

	restaurantID := ts.createRestaurant(t, token, "Acme Diner")

	w, _ := ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantID+"/menu/items", token, gin.H{
		"name":  "Burger",
		"price": 9.5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantID+"/menu/items", token, gin.H{
		"name":  "Seasonal Pie",
		"price": 6.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	pieID := env.Data["item"].(map[string]any)["id"].(string)

	w, _ = ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantID+"/menu/items/"+pieID+"/toggle-availability", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The storefront serves only available items; staff still see both.
	w, env = ts.do(t, http.MethodGet, "/mobile/restaurants/"+restaurantID+"/menu", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := env.Data["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Burger", items[0].(map[string]any)["name"])

	w, env = ts.do(t, http.MethodGet, "/tenant/restaurants/"+restaurantID+"/menu/items", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, env.Data["items"], 2)
}

func TestMenuItemLifecycle(t *testing.T) {
	ts := newTestServer(t)
	ts.createTenant(t, "Acme", "owner@acme.test")
	token := ts.login(t, "/tenant/auth/login", "owner@acme.test", "secret123")

	w, env := ts.do(t, http.MethodPost, "/tenant/restaurants", token, gin.H{"name": "Acme Diner"})
	require.Equal(t, http.StatusCreated, w.Code)
	restaurantID := env.Data["restaurant"].(map[string]any)["id"].(string)

	w, env = ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantID+"/menu/items", token, gin.H{
		"name":  "Burger",
		"price": 9.5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	item := env.Data["item"].(map[string]any)
	itemID := item["id"].(string)
	assert.Equal(t, true, item["is_available"])

	w, env = ts.do(t, http.MethodPost, "/tenant/restaurants/"+restaurantID+"/menu/items/"+itemID+"/toggle-availability", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, env.Data["item"].(map[string]any)["is_available"])

	w, _ = ts.do(t, http.MethodDelete, "/tenant/restaurants/"+restaurantID+"/menu/items/"+itemID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/tenant/restaurants/"+restaurantID+"/menu/items/"+itemID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
