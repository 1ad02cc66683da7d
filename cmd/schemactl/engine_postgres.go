//go:build !no_postgres

package main

import _ "github.com/burugo/schemamgr/drivers/db/postgres"
