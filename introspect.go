package schemamgr

import (
	"context"
	"fmt"

	"github.com/burugo/schemamgr/statement"
)

// TableInfo describes an existing table.
type TableInfo struct {
	Name       string
	Columns    []ColumnInfo
	Indexes    []IndexInfo
	PrimaryKey []string
}

// ColumnInfo describes one column as the engine reports it.
type ColumnInfo struct {
	Name       string
	DataType   string
	IsNullable bool
	IsPrimary  bool
	IsUnique   bool
	Default    *string
}

// IndexInfo describes one index. Primary key indexes are not listed.
type IndexInfo struct {
	Name    string
	Columns []string
	Unique  bool
}

// Column returns the named column, or nil.
func (t *TableInfo) Column(name string) *ColumnInfo {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

func describe(ctx context.Context, conn Conn, table string) (*TableInfo, error) {
	d, err := dialectFor(conn)
	if err != nil {
		return nil, err
	}
	in, ok := d.(Introspector)
	if !ok {
		return nil, fmt.Errorf("%w: %s dialect cannot describe tables", statement.ErrUnsupported, d.Backend())
	}
	return in.DescribeTable(ctx, conn, table)
}
