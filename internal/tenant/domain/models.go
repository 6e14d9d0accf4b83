// Package domain contains persistence models for tenants.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

const (
	PlanBasic        = "basic"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
	SubscriptionExpired   = "expired"
)

var (
	ErrNotFound        = errors.New("tenant not found")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidPlan     = errors.New("invalid_plan")
	ErrSlugTaken       = errors.New("invalid_slug")
	ErrDomainTaken     = errors.New("invalid_domain")
	ErrTenantInactive  = errors.New("tenant inactive")
	ErrSubscriptionDue = errors.New("subscription expired")
)

// Tenant is a billing organization owning one or more restaurants.
type Tenant struct {
	ID                    snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name                  string            `gorm:"type:text;not null" json:"name"`
	Slug                  string            `gorm:"type:text;not null;uniqueIndex:ux_tenants_slug" json:"slug"`
	Domain                *string           `gorm:"type:text;uniqueIndex:ux_tenants_domain" json:"domain,omitempty"`
	Status                string            `gorm:"type:text;not null;default:active" json:"status"`
	Plan                  string            `gorm:"type:text;not null;default:basic" json:"plan"`
	SubscriptionStatus    string            `gorm:"type:text;not null;default:active" json:"subscription_status"`
	SubscriptionExpiresAt *time.Time        `json:"subscription_expires_at,omitempty"`
	Settings              datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"settings"`
	BrandingColors        datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"branding_colors"`
	CreatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt             time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt             gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Tenant) TableName() string { return "tenants" }

func (t *Tenant) IsActive() bool { return t.Status == StatusActive }

// SubscriptionValid reports whether the subscription admits access: status
// active and expiry absent or in the future.
func (t *Tenant) SubscriptionValid(now time.Time) bool {
	if t.SubscriptionStatus != SubscriptionActive {
		return false
	}
	return t.SubscriptionExpiresAt == nil || t.SubscriptionExpiresAt.After(now)
}

func ValidPlan(plan string) bool {
	switch plan {
	case PlanBasic, PlanProfessional, PlanEnterprise:
		return true
	default:
		return false
	}
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, tenant *Tenant) error
	FindByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*Tenant, error)
	FindBySlug(ctx context.Context, scope tenantscope.Scope, slug string) (*Tenant, error)
	List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]Tenant, int64, error)
	Update(ctx context.Context, tenant *Tenant) error
	UpdateStatus(ctx context.Context, id snowflake.ID, status string) error
}

type OwnerRequest struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type CreateTenantRequest struct {
	Name   string
	Domain string
	Plan   string
	Owner  OwnerRequest

	// RetrySlug appends a numeric suffix on slug collision instead of
	// failing. Used by self-service signup.
	RetrySlug bool
}

type UpdateTenantRequest struct {
	Name                  *string
	Domain                *string
	Plan                  *string
	SubscriptionStatus    *string
	SubscriptionExpiresAt *time.Time
	Settings              map[string]any
	BrandingColors        map[string]any
}

type CreateResult struct {
	Tenant *Tenant
	Owner  *accountdomain.User
}

type Service interface {
	Create(ctx context.Context, req CreateTenantRequest) (*CreateResult, error)
	List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]Tenant, int64, error)
	GetByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*Tenant, error)
	Update(ctx context.Context, scope tenantscope.Scope, id snowflake.ID, req UpdateTenantRequest) (*Tenant, error)
	Suspend(ctx context.Context, id snowflake.ID) error
	Activate(ctx context.Context, id snowflake.ID) error
	Delete(ctx context.Context, id snowflake.ID) error
}
