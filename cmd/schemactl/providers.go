package main

import (
	"context"

	"github.com/burugo/schemamgr"
)

// session is what every database command works with.
type session struct {
	Manager *schemamgr.Manager
}

// provideDB opens the database. The cleanup closes it.
func provideDB(ctx context.Context, cfg schemamgr.Config) (*schemamgr.DB, func(), error) {
	db, err := schemamgr.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if cfg.Logger != nil {
			stats := db.SQLX().Stats()
			cfg.Logger.Debug("closing database", "open_connections", stats.OpenConnections, "in_use", stats.InUse)
		}
		if err := db.Close(); err != nil && cfg.Logger != nil {
			cfg.Logger.Warn("error closing database", "error", err)
		}
	}
	return db, cleanup, nil
}

func provideManager(conn schemamgr.Conn, cfg schemamgr.Config) *schemamgr.Manager {
	return schemamgr.New(conn, schemamgr.WithLogger(cfg.Logger))
}
