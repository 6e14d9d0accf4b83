// Package domain contains the audit trail model.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	ActionTenantSwitch     = "tenant.switch"
	ActionTenantSwitchStop = "tenant.switch_stop"
	ActionTenantSuspend    = "tenant.suspend"
	ActionTenantActivate   = "tenant.activate"
	ActionTenantDelete     = "tenant.delete"
)

// AuditLog records a privileged action and who performed it.
type AuditLog struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	ActorID        snowflake.ID      `gorm:"not null;index" json:"actor_id"`
	ActorRole      string            `gorm:"type:text;not null" json:"actor_role"`
	Action         string            `gorm:"type:text;not null;index" json:"action"`
	TargetTenantID *snowflake.ID     `gorm:"index" json:"target_tenant_id,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName sets the database table name.
func (AuditLog) TableName() string { return "audit_logs" }

type Repository interface {
	Create(ctx context.Context, entry *AuditLog) error
	ListByTenant(ctx context.Context, tenantID snowflake.ID, limit int) ([]AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]AuditLog, error)
}

type Entry struct {
	ActorID        snowflake.ID
	ActorRole      string
	Action         string
	TargetTenantID *snowflake.ID
	Metadata       map[string]any
}

type Service interface {
	Record(ctx context.Context, entry Entry) error
	ListByTenant(ctx context.Context, tenantID snowflake.ID, limit int) ([]AuditLog, error)
	ListRecent(ctx context.Context, limit int) ([]AuditLog, error)
}
