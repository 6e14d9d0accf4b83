// Package domain contains persistence models for API access tokens.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
)

const (
	AbilityAccess  = "access"
	AbilityRefresh = "refresh"
)

const (
	AudienceAdmin  = "admin"
	AudienceTenant = "tenant"
	AudienceMobile = "mobile"
)

const (
	AccessTTL  = 60 * time.Minute
	RefreshTTL = 30 * 24 * time.Hour
)

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrWrongAbility = errors.New("token missing ability")
)

// AccessToken is a named, abilities-scoped, expiring credential bound to one
// account. The raw form handed to clients is "<id>|<secret>"; only the
// SHA-256 of the secret is stored.
type AccessToken struct {
	ID               snowflake.ID   `gorm:"primaryKey" json:"id"`
	UserID           snowflake.ID   `gorm:"not null;index" json:"user_id"`
	Name             string         `gorm:"type:text;not null;index" json:"name"`
	TokenHash        string         `gorm:"type:text;not null" json:"-"`
	Abilities        pq.StringArray `gorm:"type:text[]" json:"abilities"`
	SwitchedTenantID *snowflake.ID  `gorm:"column:switched_tenant_id" json:"switched_tenant_id,omitempty"`
	LastUsedAt       *time.Time     `json:"last_used_at,omitempty"`
	ExpiresAt        time.Time      `gorm:"not null;index" json:"expires_at"`
	CreatedAt        time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AccessToken) TableName() string { return "access_tokens" }

func (t *AccessToken) Can(ability string) bool {
	for _, a := range t.Abilities {
		if a == ability || a == "*" {
			return true
		}
	}
	return false
}

func (t *AccessToken) Audience() string {
	for _, aud := range []string{AudienceAdmin, AudienceTenant, AudienceMobile} {
		if t.Name == aud+"-access" || t.Name == aud+"-refresh" {
			return aud
		}
	}
	return ""
}

// Pair is the access+refresh credential pair issued at login and rotated as
// a unit at refresh.
type Pair struct {
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type Service interface {
	IssuePair(ctx context.Context, userID snowflake.ID, audience string) (*Pair, error)
	Authenticate(ctx context.Context, raw string, ability string) (*AccessToken, error)
	Refresh(ctx context.Context, raw string) (*Pair, error)
	RevokePair(ctx context.Context, userID snowflake.ID, audience string) error
	SetSwitchedTenant(ctx context.Context, tokenID snowflake.ID, tenantID *snowflake.ID) error
}
