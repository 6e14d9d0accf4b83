package menu

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/menu/repository"
	"github.com/subarna00/restrovibe-backend-sub001/internal/menu/service"
	"go.uber.org/fx"
)

var Module = fx.Module("menu.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
