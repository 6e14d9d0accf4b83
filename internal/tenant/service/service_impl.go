package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	accountdomain "github.com/subarna00/restrovibe-backend-sub001/internal/account/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/account/password"
	menudomain "github.com/subarna00/restrovibe-backend-sub001/internal/menu/domain"
	restaurantdomain "github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/domain"
	tabledomain "github.com/subarna00/restrovibe-backend-sub001/internal/table/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenant/domain"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenantscope"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db/pagination"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const slugRetryLimit = 5

type service struct {
	log         *zap.Logger
	db          *gorm.DB
	repo        domain.Repository
	accountRepo accountdomain.Repository
	genID       *snowflake.Node
}

func NewService(log *zap.Logger, conn *gorm.DB, repo domain.Repository, accountRepo accountdomain.Repository, genID *snowflake.Node) domain.Service {
	return &service{
		log:         log.Named("tenant.service"),
		db:          conn,
		repo:        repo,
		accountRepo: accountRepo,
		genID:       genID,
	}
}

// Create provisions a tenant together with its owner account in one
// transaction. A tenant row without an owner is never observable.
func (s *service) Create(ctx context.Context, req domain.CreateTenantRequest) (*domain.CreateResult, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	plan := strings.TrimSpace(req.Plan)
	if plan == "" {
		plan = domain.PlanBasic
	}
	if !domain.ValidPlan(plan) {
		return nil, domain.ErrInvalidPlan
	}

	var tenantDomain *string
	if d := strings.TrimSpace(strings.ToLower(req.Domain)); d != "" {
		tenantDomain = &d
	}

	now := time.Now().UTC()
	baseSlug := slug.Make(name)

	var result *domain.CreateResult
	attempt := func(slugCandidate string) error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			tenant := &domain.Tenant{
				ID:                 s.genID.Generate(),
				Name:               name,
				Slug:               slugCandidate,
				Domain:             tenantDomain,
				Status:             domain.StatusActive,
				Plan:               plan,
				SubscriptionStatus: domain.SubscriptionActive,
				Settings:           map[string]any{},
				BrandingColors:     map[string]any{},
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if err := s.repo.WithTx(tx).Create(ctx, tenant); err != nil {
				return err
			}

			if len(strings.TrimSpace(req.Owner.Password)) < 8 {
				return accountdomain.ErrInvalidPassword
			}
			email := strings.TrimSpace(strings.ToLower(req.Owner.Email))
			if email == "" {
				return accountdomain.ErrInvalidEmail
			}
			hashed, err := password.Hash(req.Owner.Password)
			if err != nil {
				return err
			}

			owner := &accountdomain.User{
				ID:           s.genID.Generate(),
				ExternalID:   tenant.Slug + "-owner",
				TenantID:     &tenant.ID,
				Name:         strings.TrimSpace(req.Owner.Name),
				Email:        email,
				PasswordHash: hashed,
				Phone:        strings.TrimSpace(req.Owner.Phone),
				Role:         accountdomain.RoleRestaurantOwner,
				Status:       accountdomain.StatusActive,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.accountRepo.WithTx(tx).Create(ctx, owner); err != nil {
				return err
			}

			result = &domain.CreateResult{Tenant: tenant, Owner: owner}
			return nil
		})
	}

	err := attempt(baseSlug)
	if err != nil && db.IsDuplicateKeyErr(err) && req.RetrySlug {
		for i := 2; i <= slugRetryLimit && err != nil && db.IsDuplicateKeyErr(err); i++ {
			err = attempt(fmt.Sprintf("%s-%d", baseSlug, i))
		}
	}
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, err
	}

	s.log.Info("tenant created",
		zap.String("tenant_id", result.Tenant.ID.String()),
		zap.String("slug", result.Tenant.Slug),
	)

	return result, nil
}

func (s *service) List(ctx context.Context, scope tenantscope.Scope, page pagination.Params) ([]domain.Tenant, int64, error) {
	return s.repo.List(ctx, scope, page)
}

func (s *service) GetByID(ctx context.Context, scope tenantscope.Scope, id snowflake.ID) (*domain.Tenant, error) {
	return s.repo.FindByID(ctx, scope, id)
}

func (s *service) Update(ctx context.Context, scope tenantscope.Scope, id snowflake.ID, req domain.UpdateTenantRequest) (*domain.Tenant, error) {
	tenant, err := s.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		tenant.Name = name
	}
	if req.Domain != nil {
		if d := strings.TrimSpace(strings.ToLower(*req.Domain)); d != "" {
			tenant.Domain = &d
		} else {
			tenant.Domain = nil
		}
	}
	if req.Plan != nil {
		if !domain.ValidPlan(*req.Plan) {
			return nil, domain.ErrInvalidPlan
		}
		tenant.Plan = *req.Plan
	}
	if req.SubscriptionStatus != nil {
		tenant.SubscriptionStatus = *req.SubscriptionStatus
	}
	if req.SubscriptionExpiresAt != nil {
		tenant.SubscriptionExpiresAt = req.SubscriptionExpiresAt
	}
	if req.Settings != nil {
		tenant.Settings = req.Settings
	}
	if req.BrandingColors != nil {
		tenant.BrandingColors = req.BrandingColors
	}

	if err := s.repo.Update(ctx, tenant); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrDomainTaken
		}
		return nil, err
	}
	return tenant, nil
}

func (s *service) Suspend(ctx context.Context, id snowflake.ID) error {
	return s.repo.UpdateStatus(ctx, id, domain.StatusSuspended)
}

func (s *service) Activate(ctx context.Context, id snowflake.ID) error {
	return s.repo.UpdateStatus(ctx, id, domain.StatusActive)
}

// Delete soft-deletes the tenant and everything it owns in one transaction.
func (s *service) Delete(ctx context.Context, id snowflake.ID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tenant domain.Tenant
		if err := tx.First(&tenant, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return domain.ErrNotFound
			}
			return err
		}

		// Children first, parent last.
		if err := tx.Where("tenant_id = ?", id).Delete(&menudomain.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&menudomain.MenuCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&tabledomain.Table{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&tabledomain.TableCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&restaurantdomain.Restaurant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tenant_id = ?", id).Delete(&accountdomain.User{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tenant).Error
	})
}
