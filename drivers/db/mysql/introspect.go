package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/burugo/schemamgr"
)

// errNoSuchTable is MySQL's ER_NO_SUCH_TABLE.
const errNoSuchTable = 1146

type showColumnRow struct {
	Field   string         `db:"Field"`
	Type    string         `db:"Type"`
	Null    string         `db:"Null"`
	Key     string         `db:"Key"`
	Default sql.NullString `db:"Default"`
	Extra   string         `db:"Extra"`
}

type statisticsRow struct {
	IndexName  string `db:"idx_name"`
	NonUnique  int    `db:"non_unique"`
	ColumnName string `db:"col_name"`
}

// DescribeTable returns nil when the table does not exist.
func (d *Dialect) DescribeTable(ctx context.Context, conn schemamgr.Conn, table string) (*schemamgr.TableInfo, error) {
	var cols []showColumnRow
	if err := conn.Select(ctx, &cols, "SHOW COLUMNS FROM "+d.b.Quote(table)); err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errNoSuchTable {
			return nil, nil
		}
		return nil, fmt.Errorf("SHOW COLUMNS failed: %w", err)
	}

	info := &schemamgr.TableInfo{Name: table}
	for _, c := range cols {
		ci := schemamgr.ColumnInfo{
			Name:       c.Field,
			DataType:   c.Type,
			IsNullable: c.Null == "YES",
			IsPrimary:  c.Key == "PRI",
			IsUnique:   c.Key == "UNI",
		}
		if c.Default.Valid {
			def := c.Default.String
			ci.Default = &def
		}
		info.Columns = append(info.Columns, ci)
	}

	var stats []statisticsRow
	err := conn.Select(ctx, &stats,
		`SELECT index_name AS idx_name, non_unique AS non_unique, column_name AS col_name
		FROM information_schema.statistics
		WHERE table_schema = DATABASE() AND table_name = ?
		ORDER BY index_name, seq_in_index`, table)
	if err != nil {
		return nil, fmt.Errorf("information_schema.statistics failed: %w", err)
	}

	byName := make(map[string]int)
	for _, s := range stats {
		if s.IndexName == "" || s.ColumnName == "" {
			continue
		}
		if s.IndexName == "PRIMARY" {
			info.PrimaryKey = append(info.PrimaryKey, s.ColumnName)
			continue
		}
		i, ok := byName[s.IndexName]
		if !ok {
			i = len(info.Indexes)
			byName[s.IndexName] = i
			info.Indexes = append(info.Indexes, schemamgr.IndexInfo{Name: s.IndexName, Unique: s.NonUnique == 0})
		}
		info.Indexes[i].Columns = append(info.Indexes[i].Columns, s.ColumnName)
	}
	return info, nil
}
