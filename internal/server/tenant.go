package server

import (
	"net/http"
	"strconv"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	auditdomain "github.com/subarna00/restrovibe-backend-sub001/internal/audit/domain"
	tenantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
)

type createTenantRequest struct {
	Name   string `json:"name" binding:"required"`
	Domain string `json:"domain"`
	Plan   string `json:"plan"`
	Owner  struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
	} `json:"owner" binding:"required"`
}

type updateTenantRequest struct {
	Name               *string        `json:"name"`
	Domain             *string        `json:"domain"`
	Plan               *string        `json:"plan"`
	SubscriptionStatus *string        `json:"subscription_status"`
	Settings           map[string]any `json:"settings"`
	BrandingColors     map[string]any `json:"branding_colors"`
}

func (s *Server) ListTenants(c *gin.Context) {
	var page pagination.Params
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	page = page.Normalize()

	tenants, total, err := s.tenantSvc.List(c.Request.Context(), tenantscope.ForContext(c.Request.Context()), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"tenants":   tenants,
		"page_info": pagination.NewPageInfo(page, total),
	}, "")
}

func (s *Server) CreateTenant(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	result, err := s.tenantSvc.Create(c.Request.Context(), tenantdomain.CreateTenantRequest{
		Name:   req.Name,
		Domain: req.Domain,
		Plan:   req.Plan,
		Owner: tenantdomain.OwnerRequest{
			Name:     req.Owner.Name,
			Email:    req.Owner.Email,
			Password: req.Owner.Password,
			Phone:    req.Owner.Phone,
		},
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"tenant": result.Tenant,
		"owner":  result.Owner,
	}, "tenant created")
}

func (s *Server) GetTenant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, tenantdomain.ErrNotFound)
		return
	}

	tenant, err := s.tenantSvc.GetByID(c.Request.Context(), tenantscope.ForContext(c.Request.Context()), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"tenant": tenant}, "")
}

func (s *Server) UpdateTenant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, tenantdomain.ErrNotFound)
		return
	}

	var req updateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	tenant, err := s.tenantSvc.Update(c.Request.Context(), tenantscope.ForContext(c.Request.Context()), id, tenantdomain.UpdateTenantRequest{
		Name:               req.Name,
		Domain:             req.Domain,
		Plan:               req.Plan,
		SubscriptionStatus: req.SubscriptionStatus,
		Settings:           req.Settings,
		BrandingColors:     req.BrandingColors,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"tenant": tenant}, "tenant updated")
}

func (s *Server) DeleteTenant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, tenantdomain.ErrNotFound)
		return
	}

	if err := s.tenantSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordTenantAction(c, auditdomain.ActionTenantDelete, id)
	respond(c, http.StatusOK, nil, "tenant deleted")
}

func (s *Server) SuspendTenant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, tenantdomain.ErrNotFound)
		return
	}

	if err := s.tenantSvc.Suspend(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordTenantAction(c, auditdomain.ActionTenantSuspend, id)
	respond(c, http.StatusOK, nil, "tenant suspended")
}

func (s *Server) ActivateTenant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, tenantdomain.ErrNotFound)
		return
	}

	if err := s.tenantSvc.Activate(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordTenantAction(c, auditdomain.ActionTenantActivate, id)
	respond(c, http.StatusOK, nil, "tenant activated")
}

// SwitchTenant pins the admin's session to one tenant. The marker lives on
// the access-token row, so it survives across requests and dies with the
// token.
func (s *Server) SwitchTenant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, tenantdomain.ErrNotFound)
		return
	}

	ctx := c.Request.Context()
	ident, ok := identity(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	tenant, err := s.tenantSvc.GetByID(ctx, tenantscope.ForTenant(id), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.tokenSvc.SetSwitchedTenant(ctx, ident.TokenID, &tenant.ID); err != nil {
		AbortWithError(c, err)
		return
	}

	s.recordTenantAction(c, auditdomain.ActionTenantSwitch, tenant.ID)
	respond(c, http.StatusOK, gin.H{"tenant": tenant}, "switched to tenant")
}

// StopSwitching clears the session's switch marker.
func (s *Server) StopSwitching(c *gin.Context) {
	ident, ok := identity(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	if err := s.tokenSvc.SetSwitchedTenant(c.Request.Context(), ident.TokenID, nil); err != nil {
		AbortWithError(c, err)
		return
	}

	if ident.SwitchedTenantID != nil {
		s.recordTenantAction(c, auditdomain.ActionTenantSwitchStop, *ident.SwitchedTenantID)
	}
	respond(c, http.StatusOK, nil, "stopped switching")
}

func (s *Server) ListAuditLogs(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		limit = parsed
	}

	var (
		entries []auditdomain.AuditLog
		err     error
	)
	if v := c.Query("tenant_id"); v != "" {
		tenantID, parseErr := snowflake.ParseString(v)
		if parseErr != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}
		entries, err = s.auditSvc.ListByTenant(ctx, tenantID, limit)
	} else {
		entries, err = s.auditSvc.ListRecent(ctx, limit)
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"audit_logs": entries}, "")
}

func (s *Server) recordTenantAction(c *gin.Context, action string, tenantID snowflake.ID) {
	ident, ok := identity(c)
	if !ok {
		return
	}
	// Best effort: the action already happened and is not rolled back.
	_ = s.auditSvc.Record(c.Request.Context(), auditdomain.Entry{
		ActorID:        ident.UserID,
		ActorRole:      ident.Role,
		Action:         action,
		TargetTenantID: &tenantID,
	})
}

func paramID(c *gin.Context, name string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(c.Param(name))
	if err != nil {
		return 0, false
	}
	return id, true
}
