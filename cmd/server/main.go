package main

import (
	"context"

	"github.com/dmitrijs2005/finplanner/internal/server"
	"github.com/dmitrijs2005/finplanner/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		server.Exit(err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		server.Exit(err)
	}

	if err := app.Run(ctx); err != nil {
		server.Exit(err)
	}
}
