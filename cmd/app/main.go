package main

import (
	"context"

	"roam/config"
	"roam/di"
	"roam/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	app := di.InitializeService()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.Snapshot.Run(ctx)
	go app.Events.Run(ctx)

	app.HTTP.Serve()
}
