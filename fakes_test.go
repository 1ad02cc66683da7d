package schemamgr

import (
	"context"
	"testing"

	"github.com/burugo/schemamgr/statement"
)

type execCall struct {
	query string
	args  []any
}

// fakeConn records what it is asked to run and replays canned results.
type fakeConn struct {
	backends []Backend // reported in turn; the last one sticks
	calls    int

	execErr  error
	row      Row
	queryErr error

	execs   []execCall
	queries []execCall
}

func (c *fakeConn) Backend() Backend {
	i := c.calls
	if i >= len(c.backends) {
		i = len(c.backends) - 1
	}
	c.calls++
	return c.backends[i]
}

func (c *fakeConn) Exec(_ context.Context, query string, args ...any) (int64, error) {
	c.execs = append(c.execs, execCall{query, args})
	if c.execErr != nil {
		return 0, c.execErr
	}
	return 1, nil
}

func (c *fakeConn) QueryOne(_ context.Context, query string, args ...any) (Row, error) {
	c.queries = append(c.queries, execCall{query, args})
	return c.row, c.queryErr
}

func (c *fakeConn) Select(context.Context, any, string, ...any) error {
	return nil
}

// fakeDialect renders every statement as "<backend>: <kind>".
type fakeDialect struct {
	backend   Backend
	renderErr error
	probes    []Probe
}

func (d *fakeDialect) Backend() Backend   { return d.backend }
func (d *fakeDialect) DriverName() string { return string(d.backend) }

func (d *fakeDialect) Render(stmt statement.Statement) (string, error) {
	if d.renderErr != nil {
		return "", d.renderErr
	}
	return string(d.backend) + ": " + stmt.Kind().String(), nil
}

func (d *fakeDialect) BuildProbe(p Probe) ProbeQuery {
	d.probes = append(d.probes, p)
	return ProbeQuery{
		SQL:  string(d.backend) + " probe " + p.Kind.String(),
		Args: []any{p.Table, p.Target},
	}
}

// useDialect installs d for the duration of the test, replacing whatever is
// registered for its backend.
func useDialect(t *testing.T, d Dialect) {
	t.Helper()
	restore := unregisterDialect(d.Backend())
	registryMu.Lock()
	dialects[d.Backend()] = d
	registryMu.Unlock()
	t.Cleanup(restore)
}

// withoutDialect removes the dialect for b for the duration of the test.
func withoutDialect(t *testing.T, b Backend) {
	t.Helper()
	t.Cleanup(unregisterDialect(b))
}
