package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/subarna00/restrovibe-backend-sub001/internal/account"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/audit"
	auditdomain "github.com/subarna00/restrovibe-backend-sub001/internal/audit/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/config"
	"github.com/subarna00/restrovibe-backend-sub001/internal/menu"
	menudomain "github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	obsmetrics "github.com/subarna00/restrovibe-backend-sub001/internal/observability/metrics"
	obstracing "github.com/subarna00/restrovibe-backend-sub001/internal/observability/tracing"
	"github.com/subarna00/restrovibe-backend-sub001/internal/restaurant"
	restaurantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/table"
	tabledomain "github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenant"
	tenantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/token"
	tokendomain "github.com/subarna00/restrovibe-backend-sub001/internal/token/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	account.Module,
	audit.Module,
	menu.Module,
	restaurant.Module,
	table.Module,
	tenant.Module,
	token.Module,
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) { s.RegisterRoutes() }),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, metrics *obsmetrics.Metrics) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obstracing.GinMiddleware())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine        *gin.Engine
	cfg           config.Config
	genID         *snowflake.Node
	accountSvc    accountdomain.Service
	tenantSvc     tenantdomain.Service
	tokenSvc      tokendomain.Service
	restaurantSvc restaurantdomain.Service
	menuSvc       menudomain.Service
	tableSvc      tabledomain.Service
	auditSvc      auditdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	Cfg           config.Config
	GenID         *snowflake.Node
	AccountSvc    accountdomain.Service
	TenantSvc     tenantdomain.Service
	TokenSvc      tokendomain.Service
	RestaurantSvc restaurantdomain.Service
	MenuSvc       menudomain.Service
	TableSvc      tabledomain.Service
	AuditSvc      auditdomain.Service
}

func NewServer(p ServerParams) *Server {
	return &Server{
		engine:        p.Gin,
		cfg:           p.Cfg,
		genID:         p.GenID,
		accountSvc:    p.AccountSvc,
		tenantSvc:     p.TenantSvc,
		tokenSvc:      p.TokenSvc,
		restaurantSvc: p.RestaurantSvc,
		menuSvc:       p.MenuSvc,
		tableSvc:      p.TableSvc,
		auditSvc:      p.AuditSvc,
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) RegisterRoutes() {
	s.registerAdminRoutes()
	s.registerTenantRoutes()
	s.registerMobileRoutes()
}

func (s *Server) registerAdminRoutes() {
	adminAuth := AuthOptions{
		Audience: tokendomain.AudienceAdmin,
		Roles:    []string{accountdomain.RoleSuperAdmin},
	}

	auth := s.engine.Group("/admin/auth")
	auth.POST("/login", s.Login(tokendomain.AudienceAdmin, []string{accountdomain.RoleSuperAdmin}, false))
	auth.POST("/refresh", s.Refresh)
	auth.POST("/logout", s.AuthRequired(adminAuth), s.Logout(tokendomain.AudienceAdmin))
	auth.GET("/me", s.AuthRequired(adminAuth), s.Me)

	admin := s.engine.Group("/admin", s.AuthRequired(adminAuth))
	{
		admin.GET("/tenants", s.ListTenants)
		admin.POST("/tenants", s.CreateTenant)
		admin.POST("/tenants/stop-switching", s.StopSwitching)
		admin.GET("/tenants/:id", s.GetTenant)
		admin.PUT("/tenants/:id", s.UpdateTenant)
		admin.DELETE("/tenants/:id", s.DeleteTenant)
		admin.POST("/tenants/:id/suspend", s.SuspendTenant)
		admin.POST("/tenants/:id/activate", s.ActivateTenant)
		admin.POST("/tenants/:id/switch", s.SwitchTenant)

		admin.GET("/audit-logs", s.ListAuditLogs)
	}
}

func (s *Server) registerTenantRoutes() {
	staffRoles := []string{
		accountdomain.RoleRestaurantOwner,
		accountdomain.RoleManager,
		accountdomain.RoleStaff,
	}
	staffAuth := AuthOptions{
		Audience:    tokendomain.AudienceTenant,
		Roles:       staffRoles,
		TenantCheck: true,
	}

	auth := s.engine.Group("/tenant/auth")
	auth.POST("/login", s.Login(tokendomain.AudienceTenant, staffRoles, true))
	auth.POST("/refresh", s.Refresh)
	auth.POST("/logout", s.AuthRequired(staffAuth), s.Logout(tokendomain.AudienceTenant))
	auth.GET("/me", s.AuthRequired(staffAuth), s.Me)

	restaurants := s.engine.Group("/tenant/restaurants", s.AuthRequired(staffAuth))
	{
		restaurants.GET("", s.ListRestaurants)
		restaurants.POST("", s.CreateRestaurant)
		restaurants.GET("/:id", s.GetRestaurant)
		restaurants.PUT("/:id", s.UpdateRestaurant)
		restaurants.DELETE("/:id", s.DeleteRestaurant)

		restaurants.GET("/:id/menu/categories", s.ListMenuCategories)
		restaurants.POST("/:id/menu/categories", s.CreateMenuCategory)
		restaurants.PUT("/:id/menu/categories/:categoryId", s.UpdateMenuCategory)
		restaurants.DELETE("/:id/menu/categories/:categoryId", s.DeleteMenuCategory)

		restaurants.GET("/:id/menu/items", s.ListMenuItems)
		restaurants.POST("/:id/menu/items", s.CreateMenuItem)
		restaurants.GET("/:id/menu/items/:itemId", s.GetMenuItem)
		restaurants.PUT("/:id/menu/items/:itemId", s.UpdateMenuItem)
		restaurants.DELETE("/:id/menu/items/:itemId", s.DeleteMenuItem)
		restaurants.POST("/:id/menu/items/:itemId/toggle-availability", s.ToggleMenuItemAvailability)

		restaurants.GET("/:id/tables", s.ListTables)
		restaurants.POST("/:id/tables", s.CreateTable)
		restaurants.PUT("/:id/tables/:tableId", s.UpdateTable)
		restaurants.DELETE("/:id/tables/:tableId", s.DeleteTable)
		restaurants.POST("/:id/tables/:tableId/status", s.SetTableStatus)
	}
}

func (s *Server) registerMobileRoutes() {
	mobileRoles := []string{
		accountdomain.RoleCustomer,
		accountdomain.RoleRestaurantOwner,
	}
	mobileAuth := AuthOptions{
		Audience:    tokendomain.AudienceMobile,
		Roles:       mobileRoles,
		TenantCheck: true,
	}

	auth := s.engine.Group("/mobile/auth")
	auth.POST("/register", s.MobileRegister)
	auth.POST("/login", s.Login(tokendomain.AudienceMobile, mobileRoles, true))
	auth.POST("/refresh", s.Refresh)
	auth.POST("/logout", s.AuthRequired(mobileAuth), s.Logout(tokendomain.AudienceMobile))

	mobile := s.engine.Group("/mobile")
	{
		mobile.GET("/restaurants", s.MobileListRestaurants)
		mobile.GET("/restaurants/:id/menu", s.MobileGetMenu)
	}
}
