package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	restaurantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
)

type createRestaurantRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	AddressLine string `json:"address_line"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CuisineType string `json:"cuisine_type"`
	PriceRange  string `json:"price_range"`

	BusinessHours map[string]any `json:"business_hours"`
	Settings      map[string]any `json:"settings"`
}

type updateRestaurantRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	AddressLine *string `json:"address_line"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	PostalCode  *string `json:"postal_code"`
	Country     *string `json:"country"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	CuisineType *string `json:"cuisine_type"`
	PriceRange  *string `json:"price_range"`
	Status      *string `json:"status"`

	BusinessHours map[string]any `json:"business_hours"`
	Settings      map[string]any `json:"settings"`
}

// scopedRestaurant resolves the :id route segment under the caller's scope.
// Writes to nested resources must prove the restaurant is visible to the
// caller first; a restaurant of another tenant resolves to not-found, so
// nothing can be attached to it.
func (s *Server) scopedRestaurant(c *gin.Context) (*restaurantdomain.Restaurant, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, restaurantdomain.ErrNotFound)
		return nil, false
	}

	ctx := c.Request.Context()
	restaurant, err := s.restaurantSvc.GetByID(ctx, tenantscope.ForContext(ctx), id)
	if err != nil {
		AbortWithError(c, err)
		return nil, false
	}
	return restaurant, true
}

func (s *Server) ListRestaurants(c *gin.Context) {
	var page pagination.Params
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}
	page = page.Normalize()

	ctx := c.Request.Context()
	restaurants, total, err := s.restaurantSvc.List(ctx, tenantscope.ForContext(ctx), page)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{
		"restaurants": restaurants,
		"page_info":   pagination.NewPageInfo(page, total),
	}, "")
}

func (s *Server) CreateRestaurant(c *gin.Context) {
	var req createRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	restaurant, err := s.restaurantSvc.Create(c.Request.Context(), restaurantdomain.CreateRestaurantRequest{
		Name:          req.Name,
		Description:   req.Description,
		AddressLine:   req.AddressLine,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Phone:         req.Phone,
		Email:         req.Email,
		CuisineType:   req.CuisineType,
		PriceRange:    req.PriceRange,
		BusinessHours: req.BusinessHours,
		Settings:      req.Settings,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"restaurant": restaurant}, "restaurant created")
}

func (s *Server) GetRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, restaurantdomain.ErrNotFound)
		return
	}

	ctx := c.Request.Context()
	restaurant, err := s.restaurantSvc.GetByID(ctx, tenantscope.ForContext(ctx), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"restaurant": restaurant}, "")
}

func (s *Server) UpdateRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, restaurantdomain.ErrNotFound)
		return
	}

	var req updateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	restaurant, err := s.restaurantSvc.Update(ctx, tenantscope.ForContext(ctx), id, restaurantdomain.UpdateRestaurantRequest{
		Name:          req.Name,
		Description:   req.Description,
		AddressLine:   req.AddressLine,
		City:          req.City,
		State:         req.State,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
		Phone:         req.Phone,
		Email:         req.Email,
		CuisineType:   req.CuisineType,
		PriceRange:    req.PriceRange,
		Status:        req.Status,
		BusinessHours: req.BusinessHours,
		Settings:      req.Settings,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"restaurant": restaurant}, "restaurant updated")
}

func (s *Server) DeleteRestaurant(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, restaurantdomain.ErrNotFound)
		return
	}

	ctx := c.Request.Context()
	if err := s.restaurantSvc.Delete(ctx, tenantscope.ForContext(ctx), id); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "restaurant deleted")
}
