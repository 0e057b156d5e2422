package db

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/lebokota/storefront/internal/config"
	"github.com/lebokota/storefront/internal/observability/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module provides the shared database handle. The handle is injected into
// repository constructors explicitly; nothing reaches for ambient global
// state.
var Module = fx.Module("db",
	fx.Provide(Open),
)

// DSN builds the sqlite connection string with the busy timeout pragma so
// concurrent writers queue instead of failing immediately.
func DSN(cfg config.Config) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)", cfg.DBPath, cfg.DBBusyTimeout)
}

// Open opens the sqlite database and registers a shutdown hook that closes
// the underlying pool.
func Open(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(DSN(cfg)), &gorm.Config{
		Logger:         logger.NewGormLogger(logger.DefaultGormLoggerConfig()),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}

	log.Info("database opened", zap.String("path", cfg.DBPath))

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
	}

	return conn, nil
}
