package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/subarna00/restrovibe-backend-sub001/internal/config"
	"github.com/subarna00/restrovibe-backend-sub001/internal/logger"
	"github.com/subarna00/restrovibe-backend-sub001/internal/migration"
	"github.com/subarna00/restrovibe-backend-sub001/internal/observability"
	"github.com/subarna00/restrovibe-backend-sub001/internal/server"
	"github.com/subarna00/restrovibe-backend-sub001/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
