// Package tenantctx carries the authenticated identity and its tenant view
// through the request context. The context is the only place this state
// lives: it is created when the access middleware accepts a request and dies
// with the request, so nothing can leak between requests sharing a worker.
package tenantctx

import (
	"context"

	"github.com/bwmarrin/snowflake"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
)

// Identity is the resolved actor for a request.
type Identity struct {
	UserID       snowflake.ID
	TenantID     *snowflake.ID
	RestaurantID *snowflake.ID
	Role         string
	Permissions  []string
	TokenID      snowflake.ID

	// SwitchedTenantID is the server-side switch marker for a super admin
	// browsing a tenant's data. Ignored for every other role.
	SwitchedTenantID *snowflake.ID
}

func (i *Identity) IsSuperAdmin() bool {
	return i != nil && i.Role == accountdomain.RoleSuperAdmin
}

// EffectiveTenant returns the tenant currently governing this identity's
// visibility. A super admin with a switch marker sees the switched tenant;
// everyone else sees their own. A super admin with no switch has no
// effective tenant (no constraint).
func (i *Identity) EffectiveTenant() (snowflake.ID, bool) {
	if i == nil {
		return 0, false
	}
	if i.IsSuperAdmin() {
		if i.SwitchedTenantID != nil {
			return *i.SwitchedTenantID, true
		}
		return 0, false
	}
	if i.TenantID != nil {
		return *i.TenantID, true
	}
	return 0, false
}

// CanAccessTenant reports whether this identity may touch the given tenant.
func (i *Identity) CanAccessTenant(tenantID snowflake.ID) bool {
	if i == nil {
		return false
	}
	if i.IsSuperAdmin() {
		return true
	}
	return i.TenantID != nil && *i.TenantID == tenantID
}

type identityKey struct{}

type overrideKey struct{}

// WithIdentity attaches the identity to the context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// FromContext returns the identity attached to the context, if any.
func FromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	identity, ok := ctx.Value(identityKey{}).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// OwnTenant returns the identity's own tenant, never a switched one. Used to
// default the tenant reference on create so a switched-in super admin cannot
// accidentally write into the tenant it is browsing.
func OwnTenant(ctx context.Context) (snowflake.ID, bool) {
	identity, ok := FromContext(ctx)
	if !ok || identity.TenantID == nil {
		return 0, false
	}
	return *identity.TenantID, true
}

// RunAs runs fn with the effective tenant overridden to tenantID. The
// override lives only in the derived context, so the prior view is restored
// when fn returns, errors, or panics.
func RunAs(ctx context.Context, tenantID snowflake.ID, fn func(context.Context) error) error {
	return fn(context.WithValue(ctx, overrideKey{}, tenantID))
}

// TenantOverride returns the RunAs override on the context, if set.
func TenantOverride(ctx context.Context) (snowflake.ID, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(overrideKey{}).(snowflake.ID)
	return id, ok
}
