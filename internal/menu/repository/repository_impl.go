package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
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

func (r *repository) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) ListCategories(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.MenuCategory, error) {
	var categories []domain.MenuCategory
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repository) FindCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*domain.MenuCategory, error) {
	var category domain.MenuCategory
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *repository) UpdateCategory(ctx context.Context, category *domain.MenuCategory) error {
	category.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *repository) DeleteCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error {
	result := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Delete(&domain.MenuCategory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *repository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) ListItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListAvailableItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Where("is_available = ?", true).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) UpdateItem(ctx context.Context, item *domain.MenuItem) error {
	item.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error {
	result := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Delete(&domain.MenuItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
