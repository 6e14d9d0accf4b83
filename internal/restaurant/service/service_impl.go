package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	menudomain "github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	tabledomain "github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantctx"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	log   *zap.Logger
	db    *gorm.DB
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, conn *gorm.DB, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("restaurant.service"),
		db:    conn,
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateRestaurantRequest) (*domain.Restaurant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	tenantID := req.TenantID
	if tenantID == 0 {
		// Default to the caller's own tenant, never a switched one: a
		// super admin browsing tenant A must not create rows in A by
		// accident.
		own, ok := tenantctx.OwnTenant(ctx)
		if !ok {
			return nil, domain.ErrNotFound
		}
		tenantID = own
	}

	restaurant := &domain.Restaurant{
		ID:            s.genID.Generate(),
		TenantID:      tenantID,
		Name:          name,
		Slug:          slug.Make(name),
		Description:   strings.TrimSpace(req.Description),
		AddressLine:   strings.TrimSpace(req.AddressLine),
		City:          strings.TrimSpace(req.City),
		State:         strings.TrimSpace(req.State),
		PostalCode:    strings.TrimSpace(req.PostalCode),
		Country:       strings.TrimSpace(req.Country),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         strings.TrimSpace(strings.ToLower(req.Email)),
		CuisineType:   strings.TrimSpace(req.CuisineType),
		PriceRange:    strings.TrimSpace(req.PriceRange),
		Status:        domain.StatusActive,
		BusinessHours: orEmpty(req.BusinessHours),
		Settings:      orEmpty(req.Settings),
	}

	if err := s.repo.Create(ctx, restaurant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}

	s.log.Info("restaurant created",
		zap.String("restaurant_id", restaurant.ID.String()),
		zap.String("tenant_id", tenantID.String()),
	)

	return restaurant, nil
}

func (s *service) List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]domain.Restaurant, int64, error) {
	return s.repo.List(ctx, scope, page)
}

func (s *service) GetByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*domain.Restaurant, error) {
	return s.repo.FindByID(ctx, scope, id)
}

func (s *service) GetPublic(ctx context.Context, id snowflake.ID) (*domain.Restaurant, error) {
	return s.repo.FindPublic(ctx, id)
}

func (s *service) ListPublic(ctx context.Context, page pagination.Params) ([]domain.Restaurant, int64, error) {
	return s.repo.ListPublic(ctx, page)
}

func (s *service) Update(ctx context.Context, scope tenantscope.Scope, id snowflake.ID, req domain.UpdateRestaurantRequest) (*domain.Restaurant, error) {
	restaurant, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		restaurant.Name = name
	}
	applyString(&restaurant.Description, req.Description)
	applyString(&restaurant.AddressLine, req.AddressLine)
	applyString(&restaurant.City, req.City)
	applyString(&restaurant.State, req.State)
	applyString(&restaurant.PostalCode, req.PostalCode)
	applyString(&restaurant.Country, req.Country)
	applyString(&restaurant.Phone, req.Phone)
	applyString(&restaurant.Email, req.Email)
	applyString(&restaurant.CuisineType, req.CuisineType)
	applyString(&restaurant.PriceRange, req.PriceRange)
	applyString(&restaurant.Status, req.Status)
	if req.BusinessHours != nil {
		restaurant.BusinessHours = req.BusinessHours
	}
	if req.Settings != nil {
		restaurant.Settings = req.Settings
	}

	if err := s.repo.Update(ctx, restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Delete soft-deletes the restaurant and its menu and tables in one
// transaction.
func (s *service) Delete(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) error {
	restaurant, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&menudomain.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&menudomain.MenuCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&tabledomain.Table{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&tabledomain.TableCategory{}).Error; err != nil {
			return err
		}
		return tx.Delete(restaurant).Error
	})
}

func applyString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
