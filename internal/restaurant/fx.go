package restaurant

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/repository"
	"github.com/subarna00/restrovibe-backend-sub001/internal/restaurant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("restaurant.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
