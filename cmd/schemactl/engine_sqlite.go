//go:build !no_sqlite

package main

import _ "github.com/burugo/schemamgr/drivers/db/sqlite"
