package observability

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(metrics.New),
)
