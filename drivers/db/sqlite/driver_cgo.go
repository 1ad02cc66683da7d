//go:build !purego

// Default SQLite driver using mattn/go-sqlite3. Requires CGO_ENABLED=1.
//
// Build with -tags purego to use modernc.org/sqlite instead.
package sqlite

import (
	_ "github.com/mattn/go-sqlite3" // registers "sqlite3"
)

const (
	driverName = "sqlite3"
	driverType = "cgo"
)
