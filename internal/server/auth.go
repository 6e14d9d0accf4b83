package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Login verifies credentials for one audience and issues a token pair. The
// role gate uses the credentials error so a wrong-audience login is
// indistinguishable from a bad password.
func (s *Server) Login(audience string, roles []string, tenantGate bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, ErrInvalidRequest)
			return
		}

		ctx := c.Request.Context()

		user, err := s.accountSvc.VerifyCredentials(ctx, req.Email, req.Password)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if len(roles) > 0 && !roleAllowed(user.Role, roles) {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !user.IsActive() {
			AbortWithError(c, ErrForbidden)
			return
		}

		if tenantGate && user.TenantID != nil {
			tenant, err := s.tenantSvc.GetByID(ctx, tenantscope.ForTenant(*user.TenantID), *user.TenantID)
			if err != nil {
				AbortWithError(c, ErrForbidden)
				return
			}
			if !tenant.IsActive() {
				AbortWithError(c, ErrForbidden)
				return
			}
			if !tenant.SubscriptionValid(time.Now().UTC()) {
				AbortWithError(c, ErrForbidden)
				return
			}
		}

		pair, err := s.tokenSvc.IssuePair(ctx, user.ID, audience)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		respond(c, http.StatusOK, gin.H{"user": user, "tokens": pair}, "logged in")
	}
}

// Refresh rotates a token pair. The presented refresh token is revoked as
// part of rotation, so replaying it fails.
func (s *Server) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	pair, err := s.tokenSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"tokens": pair}, "token refreshed")
}

// Logout revokes both tokens of the audience pair, not just the presented
// access token.
func (s *Server) Logout(audience string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := identity(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if err := s.tokenSvc.RevokePair(c.Request.Context(), id.UserID, audience); err != nil {
			AbortWithError(c, err)
			return
		}

		respond(c, http.StatusOK, nil, "logged out")
	}
}

// Me returns the authenticated account.
func (s *Server) Me(c *gin.Context) {
	id, ok := identity(c)
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	user, err := s.accountSvc.FindByID(c.Request.Context(), id.UserID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data := gin.H{"user": user}
	if id.SwitchedTenantID != nil {
		data["switched_tenant_id"] = id.SwitchedTenantID.String()
	}
	respond(c, http.StatusOK, data, "")
}
