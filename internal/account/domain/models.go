// Package domain contains persistence models for user accounts.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin      = "super_admin"
	RoleRestaurantOwner = "restaurant_owner"
	RoleManager         = "manager"
	RoleStaff           = "staff"
	RoleCustomer        = "customer"
)

const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusSuspended = "suspended"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidEmail       = errors.New("invalid_email")
	ErrInvalidPassword    = errors.New("invalid_password")
	ErrInvalidRole        = errors.New("invalid_role")
)

// User identifies a human actor. TenantID is null only for platform super
// admins; every other role belongs to exactly one tenant.
//
// Users are exempt from tenant scoping: identity resolution reads this table
// before any tenant is known.
type User struct {
	ID           snowflake.ID   `gorm:"primaryKey" json:"id"`
	ExternalID   string         `gorm:"type:text;not null" json:"external_id"`
	TenantID     *snowflake.ID  `gorm:"index" json:"tenant_id,omitempty"`
	RestaurantID *snowflake.ID  `gorm:"index" json:"restaurant_id,omitempty"`
	Name         string         `gorm:"type:text;not null" json:"name"`
	Email        string         `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	PasswordHash string         `gorm:"type:text;not null" json:"-"`
	Phone        string         `gorm:"type:text" json:"phone,omitempty"`
	Role         string         `gorm:"type:text;not null;index" json:"role"`
	Status       string         `gorm:"type:text;not null;default:active" json:"status"`
	Permissions  pq.StringArray `gorm:"type:text[]" json:"permissions"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

func (u *User) IsActive() bool { return u.Status == StatusActive }

func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleRestaurantOwner, RoleManager, RoleStaff, RoleCustomer:
		return true
	default:
		return false
	}
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	TouchLastLogin(ctx context.Context, id snowflake.ID, at time.Time) error
}

type CreateUserRequest struct {
	TenantID     *snowflake.ID
	RestaurantID *snowflake.ID
	Name         string
	Email        string
	Password     string
	Phone        string
	Role         string
	Permissions  []string
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (*User, error)
	VerifyCredentials(ctx context.Context, email, password string) (*User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
}
