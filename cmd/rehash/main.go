// Command rehash converts plaintext passwords left in the users table into
// bcrypt hashes. It reads the same configuration as the server.
package main

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/dmitrijs2005/finplanner/internal/server"
	"github.com/dmitrijs2005/finplanner/internal/server/auth"
	"github.com/dmitrijs2005/finplanner/internal/server/config"
	"github.com/dmitrijs2005/finplanner/internal/server/services"
)

func main() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		server.Exit(err)
	}
	if cfg.DatabaseDSN == config.MemoryDSN {
		server.Exit(errors.New("rehash needs a database DSN"))
	}

	logger := logging.New(cfg.Env)

	db, m, err := server.OpenStorage(ctx, cfg, logger)
	if err != nil {
		server.Exit(err)
	}
	defer db.Close()

	n, err := services.NewBackfill(db, m, auth.NewHasher(0), logger).Run(ctx)
	if err != nil {
		logger.Error(ctx, "backfill failed", "error", err)
		db.Close()
		server.Exit(err)
	}
	logger.Info(ctx, "backfill done", "rehashed", n)
}
