package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	tenantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
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

func (r *repository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	return r.db.WithContext(ctx).Create(restaurant).Error
}

func (r *repository) FindByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := scope.Apply(r.db.WithContext(ctx)).First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *repository) List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]domain.Restaurant, int64, error) {
	var total int64
	if err := scope.Apply(r.db.WithContext(ctx).Model(&domain.Restaurant{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var restaurants []domain.Restaurant
	query := scope.Apply(r.db.WithContext(ctx))
	if err := page.Apply(query).Order("created_at DESC").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// publicQuery restricts to restaurants servable on the customer storefront:
// the restaurant is active and so is its owning tenant. A suspended tenant
// disappears from customer-facing surfaces, not just from staff login.
func (r *repository) publicQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.Restaurant{}).
		Joins("JOIN tenants ON tenants.id = restaurants.tenant_id AND tenants.deleted_at IS NULL").
		Where("restaurants.status = ?", domain.StatusActive).
		Where("tenants.status = ?", tenantdomain.StatusActive)
}

func (r *repository) FindPublic(ctx context.Context, id snowflake.ID) (*domain.Restaurant, error) {
	var restaurant domain.Restaurant
	if err := r.publicQuery(ctx).Where("restaurants.id = ?", id).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *repository) ListPublic(ctx context.Context, page pagination.Params) ([]domain.Restaurant, int64, error) {
	var total int64
	if err := r.publicQuery(ctx).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var restaurants []domain.Restaurant
	if err := page.Apply(r.publicQuery(ctx)).Order("restaurants.created_at DESC").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

func (r *repository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	restaurant.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(restaurant).Error
}
