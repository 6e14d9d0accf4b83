package migration

import (
	"github.com/subarna00/restrovibe-backend-sub001/internal/config"
	"github.com/subarna00/restrovibe-backend-sub001/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		if cfg.SeedSuperAdmin {
			return seed.EnsureSuperAdmin(conn)
		}
		return nil
	}),
)
