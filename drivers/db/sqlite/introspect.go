package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/burugo/schemamgr"
)

type columnRow struct {
	Name      string         `db:"name"`
	Type      string         `db:"type"`
	NotNull   int            `db:"notnull"`
	Default   sql.NullString `db:"dflt_value"`
	PKOrdinal int            `db:"pk"`
}

type indexRow struct {
	Name   string `db:"name"`
	Unique int    `db:"unique"`
	Origin string `db:"origin"`
}

// DescribeTable reads table and index metadata through the pragma table
// functions, so the table name is bound rather than spliced into the query.
func (d *Dialect) DescribeTable(ctx context.Context, conn schemamgr.Conn, table string) (*schemamgr.TableInfo, error) {
	var cols []columnRow
	if err := conn.Select(ctx, &cols,
		`SELECT name, type, "notnull", dflt_value, pk FROM pragma_table_info(?) ORDER BY cid`, table); err != nil {
		return nil, fmt.Errorf("pragma_table_info(%s): %w", table, err)
	}
	if len(cols) == 0 {
		return nil, nil
	}

	info := &schemamgr.TableInfo{Name: table}
	pk := make(map[int]string)
	for _, c := range cols {
		ci := schemamgr.ColumnInfo{
			Name:       c.Name,
			DataType:   c.Type,
			IsNullable: c.NotNull == 0 && c.PKOrdinal == 0,
			IsPrimary:  c.PKOrdinal > 0,
		}
		if c.Default.Valid {
			def := c.Default.String
			ci.Default = &def
		}
		if c.PKOrdinal > 0 {
			pk[c.PKOrdinal] = c.Name
		}
		info.Columns = append(info.Columns, ci)
	}
	for i := 1; i <= len(pk); i++ {
		info.PrimaryKey = append(info.PrimaryKey, pk[i])
	}

	var idxs []indexRow
	if err := conn.Select(ctx, &idxs,
		`SELECT name, "unique", origin FROM pragma_index_list(?) ORDER BY name`, table); err != nil {
		return nil, fmt.Errorf("pragma_index_list(%s): %w", table, err)
	}
	for _, idx := range idxs {
		if idx.Origin == "pk" {
			continue
		}
		var names []sql.NullString
		if err := conn.Select(ctx, &names,
			`SELECT name FROM pragma_index_info(?) ORDER BY seqno`, idx.Name); err != nil {
			return nil, fmt.Errorf("pragma_index_info(%s): %w", idx.Name, err)
		}
		ii := schemamgr.IndexInfo{Name: idx.Name, Unique: idx.Unique != 0}
		for _, n := range names {
			if n.Valid {
				ii.Columns = append(ii.Columns, n.String)
			}
		}
		if ii.Unique && len(ii.Columns) == 1 {
			if c := info.Column(ii.Columns[0]); c != nil {
				c.IsUnique = true
			}
		}
		info.Indexes = append(info.Indexes, ii)
	}
	return info, nil
}
