//go:build purego

package sqlite

import (
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers "sqlite"
)

const (
	driverName = "sqlite"
	driverType = "purego"
)

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}
