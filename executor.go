package schemamgr

import (
	"context"

	"github.com/burugo/schemamgr/statement"
)

// dialectFor resolves the dialect for the backend conn reports right now.
func dialectFor(conn Conn) (Dialect, error) {
	if conn == nil {
		return nil, ErrNilConn
	}
	return LookupDialect(conn.Backend())
}

// execute renders stmt for the connection's engine and runs it. The affected
// row count is discarded. Errors from the dialect and the connection are
// returned as they are.
func execute(ctx context.Context, conn Conn, stmt statement.Statement) error {
	d, err := dialectFor(conn)
	if err != nil {
		return err
	}
	query, err := d.Render(stmt)
	if err != nil {
		return err
	}
	_, err = conn.Exec(ctx, query)
	return err
}
