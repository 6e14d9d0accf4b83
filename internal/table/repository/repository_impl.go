package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
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

func (r *repository) CreateTable(ctx context.Context, table *domain.Table) error {
	return r.db.WithContext(ctx).Create(table).Error
}

func (r *repository) ListTables(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.Table, error) {
	var tables []domain.Table
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Order("name ASC").
		Find(&tables).Error
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *repository) FindTable(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*domain.Table, error) {
	var table domain.Table
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		First(&table, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &table, nil
}

func (r *repository) UpdateTable(ctx context.Context, table *domain.Table) error {
	table.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(table).Error
}

func (r *repository) DeleteTable(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error {
	result := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Delete(&domain.Table{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repository) CreateCategory(ctx context.Context, category *domain.TableCategory) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *repository) ListCategories(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.TableCategory, error) {
	var categories []domain.TableCategory
	err := scope.Apply(r.db.WithContext(ctx)).
		Where("restaurant_id = ?", restaurantID).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
