package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
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
		log:   log.Named("table.service"),
		repo:  repo,
		genID: genID,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateTableRequest) (*domain.Table, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if req.Capacity < 1 {
		return nil, domain.ErrInvalidCapacity
	}

	tenantID := req.TenantID
	if tenantID == 0 {
		own, ok := tenantctx.OwnTenant(ctx)
		if !ok {
			return nil, domain.ErrNotFound
		}
		tenantID = own
	}

	table := &domain.Table{
		ID:           s.genID.Generate(),
		TenantID:     tenantID,
		RestaurantID: req.RestaurantID,
		CategoryID:   req.CategoryID,
		Name:         name,
		Capacity:     req.Capacity,
		Status:       domain.StatusAvailable,
		FloorX:       req.FloorX,
		FloorY:       req.FloorY,
	}
	if err := s.repo.CreateTable(ctx, table); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	return table, nil
}

func (s *service) List(ctx context.Context, scope tenantscope.Scope, restaurantID snowflake.ID) ([]domain.Table, error) {
	return s.repo.ListTables(ctx, scope, restaurantID)
}

func (s *service) Update(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, req domain.UpdateTableRequest) (*domain.Table, error) {
	table, err := s.repo.FindTable(ctx, scope, restaurantID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		table.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, domain.ErrInvalidCapacity
		}
		table.Capacity = *req.Capacity
	}
	if req.CategoryID != nil {
		table.CategoryID = req.CategoryID
	}
	if req.FloorX != nil {
		table.FloorX = req.FloorX
	}
	if req.FloorY != nil {
		table.FloorY = req.FloorY
	}

	if err := s.repo.UpdateTable(ctx, table); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrNameTaken
		}
		return nil, err
	}
	return table, nil
}

func (s *service) SetStatus(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID, status string) (*domain.Table, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	table, err := s.repo.FindTable(ctx, scope, restaurantID, id)
	if err != nil {
		return nil, err
	}
	table.Status = status
	if err := s.repo.UpdateTable(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *service) Delete(ctx context.Context, scope tenantscope.Scope, restaurantID, id snowflake.ID) error {
	return s.repo.DeleteTable(ctx, scope, restaurantID, id)
}
