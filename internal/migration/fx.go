package migration

import (
	"github.com/bwmarrin/snowflake"
	"github.com/lebokota/storefront/internal/config"
	"github.com/lebokota/storefront/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		if cfg.SeedCatalog {
			return seed.EnsureCatalog(conn, node)
		}
		return nil
	}),
)
