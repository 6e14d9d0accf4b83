package tenant

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenant/repository"
	"github.com/subarna00/restrovibe-backend-sub001/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
