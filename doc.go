// Package schemamgr applies engine-independent schema changes to MySQL,
// PostgreSQL and SQLite databases and answers existence questions about
// tables, columns and indexes.
//
// A Manager wraps a Conn (a pool or a transaction) and, on every call, asks
// the connection which engine it talks to and dispatches to the Dialect
// registered for that engine. Dialects live in the drivers/db packages and
// register themselves when imported:
//
//	import (
//		"github.com/burugo/schemamgr"
//		_ "github.com/burugo/schemamgr/drivers/db/sqlite"
//	)
//
//	db, err := schemamgr.Open(ctx, schemamgr.Config{Backend: schemamgr.SQLite, DSN: "app.db"})
//	...
//	m := schemamgr.New(db)
//	ok, err := m.HasTable(ctx, "users")
//
// Using an engine whose package was not imported fails with an
// *UnsupportedBackendError; IsConfigError reports it.
package schemamgr
