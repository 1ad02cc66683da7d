// interfaces.go
// Core contracts: Conn (the connection handle), Dialect (per-engine rendering and
// probes) and the optional Introspector capability.
// These are public and intended for use by callers and driver developers.

package schemamgr

import (
	"context"

	"github.com/burugo/schemamgr/statement"
)

// Conn is a live connection or an open transaction against one engine.
// DB and Tx are the provided implementations.
type Conn interface {
	// Backend reports the engine this handle talks to.
	Backend() Backend
	// Exec runs a statement and returns the number of rows affected.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	// QueryOne returns the first row of the result, or a nil Row when there is none.
	QueryOne(ctx context.Context, query string, args ...any) (Row, error)
	// Select scans every row of the result into dest (a pointer to a slice).
	Select(ctx context.Context, dest any, query string, args ...any) error
}

// Dialect renders statements and builds existence probes for one engine.
type Dialect interface {
	Backend() Backend
	// DriverName is the database/sql driver Open uses for this engine.
	DriverName() string
	Render(stmt statement.Statement) (string, error)
	BuildProbe(p Probe) ProbeQuery
}

// Introspector is implemented by dialects that can describe an existing table.
type Introspector interface {
	DescribeTable(ctx context.Context, conn Conn, table string) (*TableInfo, error)
}

// ProbeKind selects what an existence probe looks for.
type ProbeKind int

const (
	ProbeTable ProbeKind = iota + 1
	ProbeColumn
	ProbeIndex
)

// Column is the name of the single boolean column a probe of this kind returns.
func (k ProbeKind) Column() string {
	switch k {
	case ProbeTable:
		return "has_table"
	case ProbeColumn:
		return "has_column"
	case ProbeIndex:
		return "has_index"
	default:
		return ""
	}
}

func (k ProbeKind) String() string {
	switch k {
	case ProbeTable:
		return "table"
	case ProbeColumn:
		return "column"
	case ProbeIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Probe is an existence check request. Target is the column or index name and
// is empty for ProbeTable. Names are passed through unmodified.
type Probe struct {
	Kind   ProbeKind
	Table  string
	Target string
}

// ProbeQuery is a dialect-built query whose only output column is a boolean
// named Probe.Kind.Column(). Args use '?' placeholders; Conn rebinds them.
type ProbeQuery struct {
	SQL  string
	Args []any
}
