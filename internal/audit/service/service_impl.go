package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/audit/domain"
	"go.uber.org/zap"
)

const defaultListLimit = 100

type service struct {
	log   *zap.Logger
	repo  domain.Repository
	genID *snowflake.Node
}

func NewService(log *zap.Logger, repo domain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:   log.Named("audit.service"),
		repo:  repo,
		genID: genID,
	}
}

// Record writes the entry and logs it. An audit write failure is logged
// but never fails the action it describes.
func (s *service) Record(ctx context.Context, entry domain.Entry) error {
	metadata := entry.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	row := &domain.AuditLog{
		ID:             s.genID.Generate(),
		ActorID:        entry.ActorID,
		ActorRole:      entry.ActorRole,
		Action:         entry.Action,
		TargetTenantID: entry.TargetTenantID,
		Metadata:       metadata,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		s.log.Error("audit write failed",
			zap.String("action", entry.Action),
			zap.String("actor_id", entry.ActorID.String()),
			zap.Error(err),
		)
		return err
	}

	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.String("actor_id", entry.ActorID.String()),
		zap.String("actor_role", entry.ActorRole),
	}
	if entry.TargetTenantID != nil {
		fields = append(fields, zap.String("target_tenant_id", entry.TargetTenantID.String()))
	}
	s.log.Info("audit", fields...)
	return nil
}

func (s *service) ListByTenant(ctx context.Context, tenantID snowflake.ID, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.repo.ListByTenant(ctx, tenantID, limit)
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]domain.AuditLog, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
