package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantctx"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db"
	"go.uber.org/zap"
)

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("menu.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (*domain.MenuCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	category := &domain.MenuCategory{
		ID:           s.genID.Generate(),
		TenantID:     tenantID,
		RestaurantID: req.RestaurantID,
		Name:         name,
		Slug:         slug.Make(name),
		Description:  strings.TrimSpace(req.Description),
		SortOrder:    req.SortOrder,
		IsActive:     true,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.MenuCategory, error) {
	return s.repo.ListCategories(ctx, scope, restaurantID)
}

func (s *service) UpdateCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, name, description *string, sortOrder *int, isActive *bool) (*domain.MenuCategory, error) {
	category, err := s.repo.FindCategory(ctx, scope, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, domain.ErrInvalidName
		}
		category.Name = trimmed
		category.Slug = slug.Make(trimmed)
	}
	if description != nil {
		category.Description = strings.TrimSpace(*description)
	}
	if sortOrder != nil {
		category.SortOrder = *sortOrder
	}
	if isActive != nil {
		category.IsActive = *isActive
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error {
	return s.repo.DeleteCategory(ctx, scope, restaurantID, id)
}

func (s *service) CreateItem(ctx context.Context, req domain.CreateItemRequest) (*domain.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Price < 0 {
		return nil, domain.ErrInvalidPrice
	}
	if req.SpiceLevel < 0 || req.SpiceLevel > domain.MaxSpiceLevel {
		return nil, domain.ErrInvalidSpice
	}

	tenantID, err := resolveTenant(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	variants := req.Variants
	if variants == nil {
		variants = map[string]any{}
	}

	item := &domain.MenuItem{
		ID:             s.genID.Generate(),
		TenantID:       tenantID,
		RestaurantID:   req.RestaurantID,
		CategoryID:     req.CategoryID,
		Name:           name,
		Slug:           slug.Make(name),
		Description:    strings.TrimSpace(req.Description),
		Price:          req.Price,
		CostPrice:      req.CostPrice,
		IsAvailable:    true,
		IsVegetarian:   req.IsVegetarian,
		IsVegan:        req.IsVegan,
		IsGlutenFree:   req.IsGlutenFree,
		SpiceLevel:     req.SpiceLevel,
		PreparationMin: req.PreparationMin,
		Calories:       req.Calories,
		TrackInventory: req.TrackInventory,
		StockQuantity:  req.StockQuantity,
		Variants:       variants,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}
	return item, nil
}

func (s *service) ListItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.MenuItem, error) {
	return s.repo.ListItems(ctx, scope, restaurantID)
}

func (s *service) ListAvailableItems(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.MenuItem, error) {
	return s.repo.ListAvailableItems(ctx, scope, restaurantID)
}

func (s *service) GetItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*domain.MenuItem, error) {
	return s.repo.FindItem(ctx, scope, restaurantID, id)
}

func (s *service) UpdateItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, req domain.UpdateItemRequest) (*domain.MenuItem, error) {
	item, err := s.repo.FindItem(ctx, scope, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		item.Name = name
		item.Slug = slug.Make(name)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.CategoryID != nil {
		item.CategoryID = req.CategoryID
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return nil, domain.ErrInvalidPrice
		}
		item.Price = *req.Price
	}
	if req.CostPrice != nil {
		item.CostPrice = *req.CostPrice
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.IsVegetarian != nil {
		item.IsVegetarian = *req.IsVegetarian
	}
	if req.IsVegan != nil {
		item.IsVegan = *req.IsVegan
	}
	if req.IsGlutenFree != nil {
		item.IsGlutenFree = *req.IsGlutenFree
	}
	if req.SpiceLevel != nil {
		if *req.SpiceLevel < 0 || *req.SpiceLevel > domain.MaxSpiceLevel {
			return nil, domain.ErrInvalidSpice
		}
		item.SpiceLevel = *req.SpiceLevel
	}
	if req.PreparationMin != nil {
		item.PreparationMin = *req.PreparationMin
	}
	if req.Calories != nil {
		item.Calories = *req.Calories
	}
	if req.TrackInventory != nil {
		item.TrackInventory = *req.TrackInventory
	}
	if req.StockQuantity != nil {
		item.StockQuantity = *req.StockQuantity
	}
	if req.Variants != nil {
		item.Variants = req.Variants
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) ToggleItemAvailability(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) (*domain.MenuItem, error) {
	item, err := s.repo.FindItem(ctx, scope, restaurantID, id)
	if err != nil {
		return nil, err
	}
	item.IsAvailable = !item.IsAvailable
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error {
	return s.repo.DeleteItem(ctx, scope, restaurantID, id)
}

func resolveTenant(ctx context.Context, requested snowflake.ID) (snowflake.ID, error) {
	if requested != 0 {
		return requested, nil
	}
	own, ok := tenantctx.OwnTenant(ctx)
	if !ok {
		return 0, domain.ErrItemNotFound
	}
	return own, nil
}
