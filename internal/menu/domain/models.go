// Package domain contains persistence models for menus.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxSpiceLevel = 5
)

var (
	ErrCategoryNotFound = errors.New("menu category not found")
	ErrItemNotFound     = errors.New("menu item not found")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidSpice     = errors.New("invalid_spice_level")
	ErrSlugTaken        = errors.New("invalid_slug")
)

// MenuCategory groups items on one restaurant's menu.
type MenuCategory struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	TenantID     snowflake.ID   `gorm:"not null;index" json:"tenant_id"`
	RestaurantID snowflake.ID   `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"type:text;not null" json:"name"`
	Slug         string         `gorm:"type:text;not null" json:"slug"`
	Description  string         `gorm:"type:text" json:"description,omitempty"`
	SortOrder    int            `gorm:"not null;default:0" json:"sort_order"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (MenuCategory) TableName() string { return "menu_categories" }

// MenuItem is one sellable dish. Variants holds size/add-on options.
type MenuItem struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID       snowflake.ID      `gorm:"not null;index" json:"tenant_id"`
	RestaurantID   snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_menu_items_slug,priority:1" json:"restaurant_id"`
	CategoryID     *snowflake.ID     `gorm:"index" json:"category_id,omitempty"`
	Name           string            `gorm:"type:text;not null" json:"name"`
	Slug           string            `gorm:"type:text;not null;uniqueIndex:ux_menu_items_slug,priority:2" json:"slug"`
	Description    string            `gorm:"type:text" json:"description,omitempty"`
	Price          float64           `gorm:"not null" json:"price"`
	CostPrice      float64           `json:"cost_price"`
	IsAvailable    bool              `gorm:"not null;default:true" json:"is_available"`
	IsFeatured     bool              `gorm:"not null;default:false" json:"is_featured"`
	IsVegetarian   bool              `gorm:"not null;default:false" json:"is_vegetarian"`
	IsVegan        bool              `gorm:"not null;default:false" json:"is_vegan"`
	IsGlutenFree   bool              `gorm:"not null;default:false" json:"is_gluten_free"`
	SpiceLevel     int               `gorm:"not null;default:0" json:"spice_level"`
	PreparationMin int               `json:"preparation_min"`
	Calories       int               `json:"calories"`
	TrackInventory bool              `gorm:"not null;default:false" json:"track_inventory"`
	StockQuantity  int               `gorm:"not null;default:0" json:"stock_quantity"`
	Variants       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"variants"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (MenuItem) TableName() string { return "menu_items" }

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCategory(ctx context.Context, category *MenuCategory) error
	ListCategories(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]MenuCategory, error)
	FindCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*MenuCategory, error)
	UpdateCategory(ctx context.Context, category *MenuCategory) error
	DeleteCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error

	CreateItem(ctx context.Context, item *MenuItem) error
	ListItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]MenuItem, error)
	ListAvailableItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]MenuItem, error)
	FindItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*MenuItem, error)
	UpdateItem(ctx context.Context, item *MenuItem) error
	DeleteItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error
}

type CreateCategoryRequest struct {
	TenantID     snowflake.ID
	RestaurantID snowflake.ID
	Name         string
	Description  string
	SortOrder    int
}

type CreateItemRequest struct {
	TenantID       snowflake.ID
	RestaurantID   snowflake.ID
	CategoryID     *snowflake.ID
	Name           string
	Description    string
	Price          float64
	CostPrice      float64
	IsVegetarian   bool
	IsVegan        bool
	IsGlutenFree   bool
	SpiceLevel     int
	PreparationMin int
	Calories       int
	TrackInventory bool
	StockQuantity  int
	Variants       map[string]any
}

type UpdateItemRequest struct {
	CategoryID     *snowflake.ID
	Name           *string
	Description    *string
	Price          *float64
	CostPrice      *float64
	IsAvailable    *bool
	IsFeatured     *bool
	IsVegetarian   *bool
	IsVegan        *bool
	IsGlutenFree   *bool
	SpiceLevel     *int
	PreparationMin *int
	Calories       *int
	TrackInventory *bool
	StockQuantity  *int
	Variants       map[string]any
}

type Service interface {
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*MenuCategory, error)
	ListCategories(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]MenuCategory, error)
	UpdateCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, name, description *string, sortOrder *int, isActive *bool) (*MenuCategory, error)
	DeleteCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error

	CreateItem(ctx context.Context, req CreateItemRequest) (*MenuItem, error)
	ListItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]MenuItem, error)
	ListAvailableItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]MenuItem, error)
	GetItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*MenuItem, error)
	UpdateItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, req UpdateItemRequest) (*MenuItem, error)
	ToggleItemAvailability(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*MenuItem, error)
	DeleteItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error
}
