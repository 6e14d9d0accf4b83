package audit

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/audit/repository"
	"github.com/subarna00/restrovibe-backend-sub001/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
