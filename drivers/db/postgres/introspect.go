package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/burugo/schemamgr"
)

type columnRow struct {
	Name       string         `db:"column_name"`
	DataType   string         `db:"data_type"`
	IsNullable string         `db:"is_nullable"`
	Default    sql.NullString `db:"column_default"`
}

type indexRow struct {
	Name string `db:"indexname"`
	Def  string `db:"indexdef"`
}

const (
	columnsQuery = `SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_schema = CURRENT_SCHEMA() AND table_name = ?
		ORDER BY ordinal_position`

	primaryKeyQuery = `SELECT a.attname
		FROM pg_index i
		JOIN pg_class t ON t.oid = i.indrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(i.indkey)
		WHERE i.indisprimary AND n.nspname = CURRENT_SCHEMA() AND t.relname = ?
		ORDER BY a.attnum`

	uniqueQuery = `SELECT a.attname
		FROM pg_constraint c
		JOIN pg_class t ON c.conrelid = t.oid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = ANY(c.conkey)
		WHERE c.contype = 'u' AND n.nspname = CURRENT_SCHEMA() AND t.relname = ?`

	indexesQuery = `SELECT ic.relname AS indexname, pg_get_indexdef(i.indexrelid) AS indexdef
		FROM pg_index i
		JOIN pg_class t ON t.oid = i.indrelid
		JOIN pg_class ic ON ic.oid = i.indexrelid
		JOIN pg_namespace n ON n.oid = t.relnamespace
		WHERE NOT i.indisprimary AND n.nspname = CURRENT_SCHEMA() AND t.relname = ?
		ORDER BY ic.relname`
)

// DescribeTable returns nil when the table has no columns in the current schema.
func (d *Dialect) DescribeTable(ctx context.Context, conn schemamgr.Conn, table string) (*schemamgr.TableInfo, error) {
	var cols []columnRow
	if err := conn.Select(ctx, &cols, columnsQuery, table); err != nil {
		return nil, fmt.Errorf("information_schema.columns failed: %w", err)
	}
	if len(cols) == 0 {
		return nil, nil
	}

	info := &schemamgr.TableInfo{Name: table}
	for _, c := range cols {
		ci := schemamgr.ColumnInfo{
			Name:       c.Name,
			DataType:   c.DataType,
			IsNullable: c.IsNullable == "YES",
		}
		if c.Default.Valid {
			def := c.Default.String
			ci.Default = &def
		}
		info.Columns = append(info.Columns, ci)
	}

	if err := conn.Select(ctx, &info.PrimaryKey, primaryKeyQuery, table); err != nil {
		return nil, fmt.Errorf("pg_index primary key: %w", err)
	}
	for _, name := range info.PrimaryKey {
		if c := info.Column(name); c != nil {
			c.IsPrimary = true
		}
	}

	var uniq []string
	if err := conn.Select(ctx, &uniq, uniqueQuery, table); err != nil {
		return nil, fmt.Errorf("pg_constraint unique: %w", err)
	}
	for _, name := range uniq {
		if c := info.Column(name); c != nil {
			c.IsUnique = true
		}
	}

	var idxs []indexRow
	if err := conn.Select(ctx, &idxs, indexesQuery, table); err != nil {
		return nil, fmt.Errorf("pg_index: %w", err)
	}
	for _, idx := range idxs {
		cols := parseIndexColumns(idx.Def)
		if idx.Name == "" || len(cols) == 0 {
			continue
		}
		info.Indexes = append(info.Indexes, schemamgr.IndexInfo{
			Name:    idx.Name,
			Columns: cols,
			Unique:  strings.HasPrefix(idx.Def, "CREATE UNIQUE INDEX"),
		})
	}
	return info, nil
}

// parseIndexColumns extracts column names from pg_get_indexdef output, e.g.
// CREATE UNIQUE INDEX idx_users_email ON public.users USING btree (email)
func parseIndexColumns(def string) []string {
	start := strings.Index(def, "(")
	end := strings.LastIndex(def, ")")
	if start == -1 || end == -1 || end <= start+1 {
		return nil
	}
	cols := strings.Split(def[start+1:end], ",")
	for i := range cols {
		cols[i] = strings.Trim(strings.TrimSpace(cols[i]), `"`)
	}
	return cols
}
