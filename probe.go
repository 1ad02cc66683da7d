package schemamgr

import (
	"context"
	"fmt"
)

// probe asks the connection's dialect whether a schema object exists.
func probe(ctx context.Context, conn Conn, p Probe) (bool, error) {
	column := p.Kind.Column()
	if column == "" {
		return false, fmt.Errorf("schemamgr: unknown probe kind %d", p.Kind)
	}
	d, err := dialectFor(conn)
	if err != nil {
		return false, err
	}
	q := d.BuildProbe(p)
	row, err := conn.QueryOne(ctx, q.SQL, q.Args...)
	if err != nil {
		return false, err
	}
	if row == nil {
		return false, fmt.Errorf("%w: %s probe on %s (table %q)", ErrProbeNoResult, p.Kind, d.Backend(), p.Table)
	}
	return row.Bool(column)
}
