package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, tenant *domain.Tenant) error {
	return r.db.WithContext(ctx).Create(tenant).Error
}

// The tenants table is scoped on its primary key: a staff identity can only
// resolve its own tenant row.
func (r *repository) FindByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*domain.Tenant, error) {
	var tenant domain.Tenant
	tx := scope.ApplyColumn(r.db.WithContext(ctx), "id")
	if err := tx.First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (r *repository) FindBySlug(ctx context.Context, scope tenantscope.Scope, slug string) (*domain.Tenant, error) {
	var tenant domain.Tenant
	tx := scope.ApplyColumn(r.db.WithContext(ctx), "id")
	if err := tx.First(&tenant, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &tenant, nil
}

func (r *repository) List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]domain.Tenant, int64, error) {
	var total int64
	base := scope.ApplyColumn(r.db.WithContext(ctx).Model(&domain.Tenant{}), "id")
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tenants []domain.Tenant
	query := scope.ApplyColumn(r.db.WithContext(ctx), "id")
	if err := page.Apply(query).Order("created_at DESC").Find(&tenants).Error; err != nil {
		return nil, 0, err
	}
	return tenants, total, nil
}

func (r *repository) Update(ctx context.Context, tenant *domain.Tenant) error {
	tenant.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(tenant).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id snowflake.ID, status string) error {
	result := r.db.WithContext(ctx).Model(&domain.Tenant{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
