//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/burugo/schemamgr"
)

// initializeSession opens the configured database and builds a Manager over it.
func initializeSession(ctx context.Context, cfg schemamgr.Config) (*session, func(), error) {
	wire.Build(
		provideDB,
		wire.Bind(new(schemamgr.Conn), new(*schemamgr.DB)),
		provideManager,
		wire.Struct(new(session), "*"),
	)
	return nil, nil, nil
}
