//go:build !no_mysql

package main

import _ "github.com/burugo/schemamgr/drivers/db/mysql"
