package token

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/token/service"
	"go.uber.org/fx"
)

var Module = fx.Module("token.service",
	fx.Provide(service.NewService),
)
