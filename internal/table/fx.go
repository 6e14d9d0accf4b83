package table

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/table/repository"
	"github.com/subarna00/restrovibe-backend-sub001/internal/table/service"
	"go.uber.org/fx"
)

var Module = fx.Module("table.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
