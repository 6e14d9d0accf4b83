package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	restaurantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	tenantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	tokendomain "github.com/subarna00/restrovibe-backend-sub001/internal/token/domain"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
)

type mobileRegisterRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	Domain       string `json:"domain"`
	Plan         string `json:"plan"`
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Phone        string `json:"phone"`
}

// MobileRegister is the self-service signup: it provisions a tenant with the
// caller as owner and logs them straight in. Slug collisions retry with a
// numeric suffix instead of failing, since the caller never chose the slug.
func (s *Server) MobileRegister(c *gin.Context) {
	var req mobileRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	result, err := s.tenantSvc.Create(ctx, tenantdomain.CreateTenantRequest{
		Name:   req.BusinessName,
		Domain: req.Domain,
		Plan:   req.Plan,
		Owner: tenantdomain.OwnerRequest{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Phone:    req.Phone,
		},
		RetrySlug: true,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	pair, err := s.tokenSvc.IssuePair(ctx, result.Owner.ID, tokendomain.AudienceMobile)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{
		"tenant": result.Tenant,
		"user":   result.Owner,
		"tokens": pair,
	}, "registered")
}

// MobileListRestaurants is the public storefront listing across tenants.
// Only active restaurants of active tenants are served; suspending a tenant
// pulls its restaurants from the storefront.
func (s *Server) MobileListRestaurants(c *gin.Context) {
	var page pagination.Params
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	page = page.Normalize()

	ctx := c.Request.Context()
	restaurants, total, err := s.restaurantSvc.ListPublic(ctx, page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"restaurants": restaurants,
		"page_info":   pagination.NewPageInfo(page, total),
	}, "")
}

// MobileGetMenu returns one restaurant's categories and available items for
// the public storefront. The restaurant is resolved through the public
// query, then the menu is read under that restaurant's tenant scope.
func (s *Server) MobileGetMenu(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, restaurantdomain.ErrNotFound)
		return
	}

	ctx := c.Request.Context()

	restaurant, err := s.restaurantSvc.GetPublic(ctx, restaurantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	scope := tenantscope.ForTenant(restaurant.TenantID)

	categories, err := s.menuSvc.ListCategories(ctx, scope, restaurant.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	items, err := s.menuSvc.ListAvailableItems(ctx, scope, restaurant.ID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"restaurant": restaurant,
		"categories": categories,
		"items":      items,
	}, "")
}
