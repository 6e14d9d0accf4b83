package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	tabledomain "github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
)

type createTableRequest struct {
	CategoryID *snowflake.ID `json:"category_id"`
	Name       string        `json:"name" binding:"required"`
	Capacity   int           `json:"capacity" binding:"required"`
	FloorX     *float64      `json:"floor_x"`
	FloorY     *float64      `json:"floor_y"`
}

type updateTableRequest struct {
	CategoryID *snowflake.ID `json:"category_id"`
	Name       *string       `json:"name"`
	Capacity   *int          `json:"capacity"`
	FloorX     *float64      `json:"floor_x"`
	FloorY     *float64      `json:"floor_y"`
}

type tableStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (s *Server) ListTables(c *gin.Context) {
	restaurantID, ok := paramID(c, "id")
	if !ok {
		AbortWithError(c, tabledomain.ErrNotFound)
		return
	}

	ctx := c.Request.Context()
	tables, err := s.tableSvc.List(ctx, tenantscope.ForContext(ctx), restaurantID)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"tables": tables}, "")
}

func (s *Server) CreateTable(c *gin.Context) {
	restaurant, ok := s.scopedRestaurant(c)
	if !ok {
		return
	}

	var req createTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	table, err := s.tableSvc.Create(c.Request.Context(), tabledomain.CreateTableRequest{
		TenantID:     restaurant.TenantID,
		RestaurantID: restaurant.ID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Capacity:     req.Capacity,
		FloorX:       req.FloorX,
		FloorY:       req.FloorY,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"table": table}, "table created")
}

func (s *Server) UpdateTable(c *gin.Context) {
	restaurantID, tableID, ok := tableParams(c)
	if !ok {
		return
	}

	var req updateTableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	table, err := s.tableSvc.Update(ctx, tenantscope.ForContext(ctx), restaurantID, tableID, tabledomain.UpdateTableRequest{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Capacity:   req.Capacity,
		FloorX:     req.FloorX,
		FloorY:     req.FloorY,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"table": table}, "table updated")
}

func (s *Server) SetTableStatus(c *gin.Context) {
	restaurantID, tableID, ok := tableParams(c)
	if !ok {
		return
	}

	var req tableStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ctx := c.Request.Context()
	table, err := s.tableSvc.SetStatus(ctx, tenantscope.ForContext(ctx), restaurantID, tableID, req.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{"table": table}, "table status updated")
}

func (s *Server) DeleteTable(c *gin.Context) {
	restaurantID, tableID, ok := tableParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := s.tableSvc.Delete(ctx, tenantscope.ForContext(ctx), restaurantID, tableID); err != nil {
		AbortWithError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "table deleted")
}

func tableParams(c *gin.Context) (restaurantID, tableID snowflake.ID, ok bool) {
	restaurantID, ok = paramID(c, "id")
	if !ok {
		AbortWithError(c, tabledomain.ErrNotFound)
		return 0, 0, false
	}
	tableID, ok = paramID(c, "tableId")
	if !ok {
		AbortWithError(c, tabledomain.ErrNotFound)
		return 0, 0, false
	}
	return restaurantID, tableID, true
}
