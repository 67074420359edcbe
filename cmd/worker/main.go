package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/merchantkit/pricora/internal/config"
	"github.com/merchantkit/pricora/internal/jobs"
	"github.com/merchantkit/pricora/internal/migration"
	"github.com/merchantkit/pricora/pkg/db"
	"github.com/merchantkit/pricora/pkg/log"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		jobs.WorkerModule,
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
