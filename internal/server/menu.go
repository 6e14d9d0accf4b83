package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	menudomain "github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
)

type createMenuCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type updateMenuCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type createMenuItemRequest struct {
	CategoryID     *snowflake.ID  `json:"category_id"`
	Name           string         `json:"name" binding:"required"`
	Description    string         `json:"description"`
	Price          float64        `json:"price"`
	CostPrice      float64        `json:"cost_price"`
	IsVegetarian   bool           `json:"is_vegetarian"`
	IsVegan        bool           `json:"is_vegan"`
	IsGlutenFree   bool           `json:"is_gluten_free"`
	SpiceLevel     int            `json:"spice_level"`
	PreparationMin int            `json:"preparation_min"`
	Calories       int            `json:"calories"`
	TrackInventory bool           `json:"track_inventory"`
	StockQuantity  int            `json:"stock_quantity"`
	Variants       map[string]any `json:"variants"`
}

type updateMenuItemRequest struct {
	CategoryID     *snowflake.ID  `json:"category_id"`
	Name           *string        `json:"name"`
	Description    *string        `json:"description"`
	Price          *float64       `json:"price"`
	CostPrice      *float64       `json:"cost_price"`
	IsAvailable    *bool          `json:"is_available"`
	IsFeatured     *bool          `json:"is_featured"`
	IsVegetarian   *bool          `json:"is_vegetarian"`
	IsVegan        *bool          `json:"is_vegan"`
	IsGlutenFree   *bool          `json:"is_gluten_free"`
	SpiceLevel     *int           `json:"spice_level"`
	PreparationMin *int           `json:"preparation_min"`
	Calories       *int           `json:"calories"`
	TrackInventory *bool          `json:"track_inventory"`
	StockQuantity  *int           `json:"stock_quantity"`
	Variants       map[string]any `json:"variants"`
}

func (s *Server) ListMenuCategories(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, menudomain.ErrCategoryNotFound)
		return
	}

	ctx := c.Request.Context()
	categories, err := s.menuSvc.ListCategories(ctx, tenantscope.ForContext(ctx), restaurantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"categories": categories}, "")
}

func (s *Server) CreateMenuCategory(c *gin.Context) {
	restaurant, ok := s.scopedRestaurant(c)
	if !ok {
		return
	}

	var req createMenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	category, err := s.menuSvc.CreateCategory(c.Request.Context(), menudomain.CreateCategoryRequest{
		TenantID:     restaurant.TenantID,
		RestaurantID: restaurant.ID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"category": category}, "category created")
}

func (s *Server) UpdateMenuCategory(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, menudomain.ErrCategoryNotFound)
		return
	}
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		AbortWithError(c, menudomain.ErrCategoryNotFound)
		return
	}

	var req updateMenuCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	category, err := s.menuSvc.UpdateCategory(ctx, tenantscope.ForContext(ctx), restaurantID, categoryID, req.Name, req.Description, req.SortOrder, req.IsActive)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"category": category}, "category updated")
}

func (s *Server) DeleteMenuCategory(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, menudomain.ErrCategoryNotFound)
		return
	}
	categoryID, ok := paramID(c, "categoryId")
	if !ok {
		AbortWithError(c, menudomain.ErrCategoryNotFound)
		return
	}

	ctx := c.Request.Context()
	if err := s.menuSvc.DeleteCategory(ctx, tenantscope.ForContext(ctx), restaurantID, categoryID); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "category deleted")
}

func (s *Server) ListMenuItems(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, menudomain.ErrItemNotFound)
		return
	}

	ctx := c.Request.Context()
	items, err := s.menuSvc.ListItems(ctx, tenantscope.ForContext(ctx), restaurantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"items": items}, "")
}

func (s *Server) CreateMenuItem(c *gin.Context) {
	restaurant, ok := s.scopedRestaurant(c)
	if !ok {
		return
	}

	var req createMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	item, err := s.menuSvc.CreateItem(c.Request.Context(), menudomain.CreateItemRequest{
		TenantID:       restaurant.TenantID,
		RestaurantID:   restaurant.ID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CostPrice:      req.CostPrice,
		IsVegetarian:   req.IsVegetarian,
		IsVegan:        req.IsVegan,
		IsGlutenFree:   req.IsGlutenFree,
		SpiceLevel:     req.SpiceLevel,
		PreparationMin: req.PreparationMin,
		Calories:       req.Calories,
		TrackInventory: req.TrackInventory,
		StockQuantity:  req.StockQuantity,
		Variants:       req.Variants,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"item": item}, "menu item created")
}

func (s *Server) GetMenuItem(c *gin.Context) {
	restaurantID, itemID, ok := menuItemParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	item, err := s.menuSvc.GetItem(ctx, tenantscope.ForContext(ctx), restaurantID, itemID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"item": item}, "")
}

func (s *Server) UpdateMenuItem(c *gin.Context) {
	restaurantID, itemID, ok := menuItemParams(c)
	if !ok {
		return
	}

	var req updateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	item, err := s.menuSvc.UpdateItem(ctx, tenantscope.ForContext(ctx), restaurantID, itemID, menudomain.UpdateItemRequest{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CostPrice:      req.CostPrice,
		IsAvailable:    req.IsAvailable,
		IsFeatured:     req.IsFeatured,
		IsVegetarian:   req.IsVegetarian,
		IsVegan:        req.IsVegan,
		IsGlutenFree:   req.IsGlutenFree,
		SpiceLevel:     req.SpiceLevel,
		PreparationMin: req.PreparationMin,
		Calories:       req.Calories,
		TrackInventory: req.TrackInventory,
		StockQuantity:  req.StockQuantity,
		Variants:       req.Variants,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"item": item}, "menu item updated")
}

func (s *Server) ToggleMenuItemAvailability(c *gin.Context) {
	restaurantID, itemID, ok := menuItemParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	item, err := s.menuSvc.ToggleItemAvailability(ctx, tenantscope.ForContext(ctx), restaurantID, itemID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"item": item}, "availability toggled")
}

func (s *Server) DeleteMenuItem(c *gin.Context) {
	restaurantID, itemID, ok := menuItemParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := s.menuSvc.DeleteItem(ctx, tenantscope.ForContext(ctx), restaurantID, itemID); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "menu item deleted")
}

// menuItemParams parses the restaurant and item route segments. Item lookups
// are keyed by both, so an item is only addressable under the restaurant it
// belongs to.
func menuItemParams(c *gin.Context) (restaurantID, itemID snowflake.ID, ok bool) {
	restaurantID, ok = paramID(c, "id")
	if !ok {
		AbortWithError(c, menudomain.ErrItemNotFound)
		return 0, 0, false
	}
	itemID, ok = paramID(c, "itemId")
	if !ok {
		AbortWithError(c, menudomain.ErrItemNotFound)
		return 0, 0, false
	}
	return restaurantID, itemID, true
}
