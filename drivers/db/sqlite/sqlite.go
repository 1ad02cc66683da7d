// Package sqlite registers the SQLite dialect with schemamgr.
//
// Importing it links SQLite support into the build. The default driver is
// mattn/go-sqlite3; build with -tags purego for modernc.org/sqlite.
package sqlite

import (
	"fmt"
	"strings"

	"github.com/burugo/schemamgr"
	"github.com/burugo/schemamgr/internal/sqlbuilder"
	"github.com/burugo/schemamgr/statement"
)

func init() {
	schemamgr.RegisterDialect(New())
}

// SQLiteDialector implements sqlbuilder.Dialector for SQLite.
type SQLiteDialector struct{}

func (SQLiteDialector) Quote(identifier string) string {
	return `"` + strings.ReplaceAll(identifier, `"`, `""`) + `"`
}

func (SQLiteDialector) QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (SQLiteDialector) AutoIncrement() string { return "AUTOINCREMENT" }

// ColumnType maps a column to SQLite's type affinity names.
// AUTOINCREMENT is only valid on an INTEGER PRIMARY KEY.
func (SQLiteDialector) ColumnType(col statement.ColumnDef) (string, error) {
	if col.AutoIncrement {
		if !col.PrimaryKey || !isInteger(col.Type) {
			return "", fmt.Errorf("sqlite: auto-increment column %q must be an integer primary key: %w", col.Name, statement.ErrUnsupported)
		}
		return "INTEGER", nil
	}
	switch col.Type {
	case statement.TypeInteger, statement.TypeBigInteger, statement.TypeSmallInteger:
		return "INTEGER", nil
	case statement.TypeString, statement.TypeText, statement.TypeJSON, statement.TypeUUID:
		return "TEXT", nil
	case statement.TypeBoolean:
		return "BOOLEAN", nil
	case statement.TypeFloat, statement.TypeDouble:
		return "REAL", nil
	case statement.TypeDecimal:
		return "NUMERIC", nil
	case statement.TypeDate:
		return "DATE", nil
	case statement.TypeTimestamp:
		return "DATETIME", nil
	case statement.TypeBinary:
		return "BLOB", nil
	case statement.TypeCustom:
		if col.CustomType == "" {
			return "", fmt.Errorf("sqlite: column %q: empty custom type", col.Name)
		}
		return col.CustomType, nil
	}
	return "", fmt.Errorf("sqlite: column %q type %d: %w", col.Name, col.Type, statement.ErrUnsupported)
}

func isInteger(t statement.ColumnType) bool {
	return t == statement.TypeInteger || t == statement.TypeBigInteger || t == statement.TypeSmallInteger
}

// Dialect renders statements and probes for SQLite.
type Dialect struct {
	b *sqlbuilder.Builder
}

// New returns the SQLite dialect.
func New() *Dialect {
	return &Dialect{b: sqlbuilder.New(SQLiteDialector{})}
}

func (d *Dialect) Backend() schemamgr.Backend { return schemamgr.SQLite }

// DriverName is "sqlite3" (mattn) or "sqlite" (modernc, -tags purego).
func (d *Dialect) DriverName() string { return driverName }

// DriverType reports whether the linked driver is "cgo" or "purego".
func (d *Dialect) DriverType() string { return driverType }

func unsupported(what string) error {
	return fmt.Errorf("sqlite: %s: %w", what, statement.ErrUnsupported)
}

// Render turns a statement into SQLite SQL.
func (d *Dialect) Render(stmt statement.Statement) (string, error) {
	switch s := stmt.(type) {
	case statement.TableCreate:
		var pk, autoinc int
		for _, c := range s.Columns {
			if c.PrimaryKey {
				pk++
			}
			if c.AutoIncrement {
				autoinc++
			}
		}
		if autoinc > 0 && pk > 1 {
			return "", unsupported("auto-increment with a composite primary key")
		}
		return d.b.TableCreate(s)
	case statement.IndexCreate:
		return d.b.IndexCreate(s, s.IfNotExists)
	case statement.TableAlter:
		return d.renderAlter(s)
	case statement.TableDrop:
		if len(s.Tables) > 1 {
			return "", unsupported("dropping several tables in one statement")
		}
		return d.b.TableDrop(s, false)
	case statement.TableRename:
		return d.b.TableRename(s)
	case statement.TableTruncate:
		if s.Table == "" {
			return "", fmt.Errorf("%w: table name", sqlbuilder.ErrEmptyName)
		}
		return "DELETE FROM " + d.b.Quote(s.Table), nil
	case statement.IndexDrop:
		return d.b.IndexDrop(s)
	case statement.ForeignKeyCreate:
		return "", unsupported("adding a foreign key to an existing table")
	case statement.ForeignKeyDrop:
		return "", unsupported("dropping a foreign key")
	case statement.TypeCreate, statement.TypeAlter, statement.TypeDrop:
		return "", unsupported("enum types")
	case nil:
		return "", fmt.Errorf("sqlite: nil statement")
	}
	return "", unsupported(stmt.Kind().String())
}

// renderAlter handles the single column change SQLite allows per ALTER TABLE.
func (d *Dialect) renderAlter(s statement.TableAlter) (string, error) {
	if s.Table == "" {
		return "", fmt.Errorf("%w: table name", sqlbuilder.ErrEmptyName)
	}
	if len(s.Ops) != 1 {
		return "", unsupported(fmt.Sprintf("alter table with %d operations", len(s.Ops)))
	}
	op := s.Ops[0]
	prefix := "ALTER TABLE " + d.b.Quote(s.Table) + " "
	switch op.Op {
	case statement.AddColumn:
		if op.Column.PrimaryKey || op.Column.Unique {
			return "", unsupported("adding a PRIMARY KEY or UNIQUE column")
		}
		def, err := d.b.ColumnDef(op.Column, false)
		if err != nil {
			return "", err
		}
		return prefix + "ADD COLUMN " + def, nil
	case statement.DropColumn:
		if op.Column.Name == "" {
			return "", fmt.Errorf("%w: column name", sqlbuilder.ErrEmptyName)
		}
		return prefix + "DROP COLUMN " + d.b.Quote(op.Column.Name), nil
	case statement.RenameColumn:
		if op.From == "" || op.To == "" {
			return "", fmt.Errorf("%w: column name", sqlbuilder.ErrEmptyName)
		}
		return prefix + "RENAME COLUMN " + d.b.Quote(op.From) + " TO " + d.b.Quote(op.To), nil
	case statement.ModifyColumn:
		return "", unsupported("modifying a column")
	}
	return "", unsupported(fmt.Sprintf("alter op %d", op.Op))
}

// BuildProbe returns a one-row catalog query. Names are bound, not quoted.
func (d *Dialect) BuildProbe(p schemamgr.Probe) schemamgr.ProbeQuery {
	switch p.Kind {
	case schemamgr.ProbeTable:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_table FROM sqlite_master WHERE type = 'table' AND name = ?",
			Args: []any{p.Table},
		}
	case schemamgr.ProbeColumn:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_column FROM pragma_table_info(?) WHERE name = ?",
			Args: []any{p.Table, p.Target},
		}
	case schemamgr.ProbeIndex:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_index FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND name = ?",
			Args: []any{p.Table, p.Target},
		}
	}
	return schemamgr.ProbeQuery{}
}

var (
	_ schemamgr.Dialect      = (*Dialect)(nil)
	_ schemamgr.Introspector = (*Dialect)(nil)
)
