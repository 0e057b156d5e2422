package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/lebokota/storefront/internal/config"
	"github.com/lebokota/storefront/internal/migration"
	"github.com/lebokota/storefront/internal/observability"
	"github.com/lebokota/storefront/internal/server"
	"github.com/lebokota/storefront/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
