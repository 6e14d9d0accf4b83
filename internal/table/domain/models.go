// Package domain contains persistence models for dining tables.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"gorm.io/gorm"
)

const (
	StatusAvailable    = "available"
	StatusOccupied     = "occupied"
	StatusReserved     = "reserved"
	StatusOutOfService = "out_of_service"
	StatusCleaning     = "cleaning"
)

var (
	ErrNotFound         = errors.New("table not found")
	ErrCategoryNotFound = errors.New("table category not found")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidCapacity  = errors.New("invalid_capacity")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrNameTaken        = errors.New("name_taken")
)

// TableCategory groups tables on a floor plan (patio, main hall, bar).
type TableCategory struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	TenantID     snowflake.ID   `gorm:"not null;index" json:"tenant_id"`
	RestaurantID snowflake.ID   `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"type:text;not null" json:"name"`
	SortOrder    int            `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (TableCategory) TableName() string { return "table_categories" }

// Table is one seatable unit in a restaurant.
type Table struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	TenantID     snowflake.ID   `gorm:"not null;index" json:"tenant_id"`
	RestaurantID snowflake.ID   `gorm:"not null;index;uniqueIndex:ux_tables_name,priority:1" json:"restaurant_id"`
	CategoryID   *snowflake.ID  `gorm:"index" json:"category_id,omitempty"`
	Name         string         `gorm:"type:text;not null;uniqueIndex:ux_tables_name,priority:2" json:"name"`
	Capacity     int            `gorm:"not null" json:"capacity"`
	Status       string         `gorm:"type:text;not null;default:available" json:"status"`
	FloorX       *float64       `gorm:"column:floor_x" json:"floor_x,omitempty"`
	FloorY       *float64       `gorm:"column:floor_y" json:"floor_y,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Table) TableName() string { return "tables" }

func ValidStatus(status string) bool {
	switch status {
	case StatusAvailable, StatusOccupied, StatusReserved, StatusOutOfService, StatusCleaning:
		return true
	default:
		return false
	}
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateTable(ctx context.Context, table *Table) error
	ListTables(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]Table, error)
	FindTable(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*Table, error)
	UpdateTable(ctx context.Context, table *Table) error
	DeleteTable(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error

	CreateCategory(ctx context.Context, category *TableCategory) error
	ListCategories(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]TableCategory, error)
}

type CreateTableRequest struct {
	TenantID     snowflake.ID
	RestaurantID snowflake.ID
	CategoryID   *snowflake.ID
	Name         string
	Capacity     int
	FloorX       *float64
	FloorY       *float64
}

type UpdateTableRequest struct {
	CategoryID *snowflake.ID
	Name       *string
	Capacity   *int
	FloorX     *float64
	FloorY     *float64
}

type Service interface {
	Create(ctx context.Context, req CreateTableRequest) (*Table, error)
	List(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]Table, error)
	Update(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, req UpdateTableRequest) (*Table, error)
	SetStatus(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, status string) (*Table, error)
	Delete(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error
}
