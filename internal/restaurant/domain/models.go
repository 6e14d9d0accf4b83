// Package domain contains persistence models for restaurants.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

var (
	ErrNotFound       = errors.New("restaurant not found")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidCuisine = errors.New("invalid_cuisine_type")
	ErrSlugTaken      = errors.New("invalid_slug")
)

// Restaurant is owned by exactly one tenant. The tenant reference is
// denormalized onto every owned row so scoping never joins.
type Restaurant struct {
	ID            snowflake.ID      `gorm:"primaryKey" json:"id"`
	TenantID      snowflake.ID      `gorm:"not null;index;uniqueIndex:ux_restaurants_slug,priority:1" json:"tenant_id"`
	Name          string            `gorm:"type:text;not null" json:"name"`
	Slug          string            `gorm:"type:text;not null;uniqueIndex:ux_restaurants_slug,priority:2" json:"slug"`
	Description   string            `gorm:"type:text" json:"description,omitempty"`
	AddressLine   string            `gorm:"type:text" json:"address_line,omitempty"`
	City          string            `gorm:"type:text" json:"city,omitempty"`
	State         string            `gorm:"type:text" json:"state,omitempty"`
	PostalCode    string            `gorm:"type:text" json:"postal_code,omitempty"`
	Country       string            `gorm:"type:text" json:"country,omitempty"`
	Phone         string            `gorm:"type:text" json:"phone,omitempty"`
	Email         string            `gorm:"type:text" json:"email,omitempty"`
	CuisineType   string            `gorm:"type:text" json:"cuisine_type,omitempty"`
	PriceRange    string            `gorm:"type:text" json:"price_range,omitempty"`
	Status        string            `gorm:"type:text;not null;default:active" json:"status"`
	BusinessHours datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"business_hours"`
	Settings      datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"settings"`
	CreatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt     gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Restaurant) TableName() string { return "restaurants" }

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, restaurant *Restaurant) error
	FindByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*Restaurant, error)
	List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]Restaurant, int64, error)
	// FindPublic and ListPublic serve the customer storefront: only active
	// restaurants of active tenants are visible there.
	FindPublic(ctx context.Context, id snowflake.ID) (*Restaurant, error)
	ListPublic(ctx context.Context, page pagination.Params) ([]Restaurant, int64, error)
	Update(ctx context.Context, restaurant *Restaurant) error
}

type CreateRestaurantRequest struct {
	TenantID    snowflake.ID
	Name        string
	Description string
	AddressLine string
	City        string
	State       string
	PostalCode  string
	Country     string
	Phone       string
	Email       string
	CuisineType string
	PriceRange  string

	BusinessHours map[string]any
	Settings      map[string]any
}

type UpdateRestaurantRequest struct {
	Name          *string
	Description   *string
	AddressLine   *string
	City          *string
	State         *string
	PostalCode    *string
	Country       *string
	Phone         *string
	Email         *string
	CuisineType   *string
	PriceRange    *string
	Status        *string
	BusinessHours map[string]any
	Settings      map[string]any
}

type Service interface {
	Create(ctx context.Context, req CreateRestaurantRequest) (*Restaurant, error)
	List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]Restaurant, int64, error)
	GetByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*Restaurant, error)
	GetPublic(ctx context.Context, id snowflake.ID) (*Restaurant, error)
	ListPublic(ctx context.Context, page pagination.Params) ([]Restaurant, int64, error)
	Update(ctx context.Context, scope tenantscope.Scope, id snowflake.ID, req UpdateRestaurantRequest) (*Restaurant, error)
	Delete(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) error
}
