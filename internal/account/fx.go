package account

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/account/repository"
	"github.com/subarna00/restrovibe-backend-sub001/internal/account/service"
	"go.uber.org/fx"
)

var Module = fx.Module("account.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
