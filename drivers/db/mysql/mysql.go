// Package mysql registers the MySQL dialect with schemamgr and links
// go-sql-driver/mysql.
package mysql

import (
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql" // MySQL driver

	"github.com/burugo/schemamgr"
	"github.com/burugo/schemamgr/internal/sqlbuilder"
	"github.com/burugo/schemamgr/statement"
)

func init() {
	schemamgr.RegisterDialect(New())
}

// MySQLDialector implements the sqlbuilder.Dialector interface for MySQL.
type MySQLDialector struct{}

func (MySQLDialector) Quote(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "``") + "`"
}

func (MySQLDialector) QuoteLiteral(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

func (MySQLDialector) AutoIncrement() string { return "AUTO_INCREMENT" }

func (MySQLDialector) ColumnType(col statement.ColumnDef) (string, error) {
	switch col.Type {
	case statement.TypeInteger:
		return "INT", nil
	case statement.TypeBigInteger:
		return "BIGINT", nil
	case statement.TypeSmallInteger:
		return "SMALLINT", nil
	case statement.TypeString:
		n := col.Length
		if n <= 0 {
			n = 255
		}
		return fmt.Sprintf("VARCHAR(%d)", n), nil
	case statement.TypeText:
		return "TEXT", nil
	case statement.TypeBoolean:
		return "BOOLEAN", nil
	case statement.TypeFloat:
		return "FLOAT", nil
	case statement.TypeDouble:
		return "DOUBLE", nil
	case statement.TypeDecimal:
		if col.Precision > 0 {
			return fmt.Sprintf("DECIMAL(%d,%d)", col.Precision, col.Scale), nil
		}
		return "DECIMAL", nil
	case statement.TypeDate:
		return "DATE", nil
	case statement.TypeTimestamp:
		return "DATETIME", nil
	case statement.TypeBinary:
		return "BLOB", nil
	case statement.TypeJSON:
		return "JSON", nil
	case statement.TypeUUID:
		return "CHAR(36)", nil
	case statement.TypeCustom:
		if col.CustomType == "" {
			return "", fmt.Errorf("mysql: column %q: empty custom type", col.Name)
		}
		return col.CustomType, nil
	}
	return "", fmt.Errorf("mysql: column %q type %d: %w", col.Name, col.Type, statement.ErrUnsupported)
}

// Dialect renders statements and probes for MySQL.
type Dialect struct {
	b *sqlbuilder.Builder
}

func New() *Dialect {
	return &Dialect{b: sqlbuilder.New(MySQLDialector{})}
}

func (d *Dialect) Backend() schemamgr.Backend { return schemamgr.MySQL }
func (d *Dialect) DriverName() string         { return "mysql" }

func unsupported(what string) error {
	return fmt.Errorf("mysql: %s: %w", what, statement.ErrUnsupported)
}

func emptyName(what string) error {
	return fmt.Errorf("%w: %s", sqlbuilder.ErrEmptyName, what)
}

func (d *Dialect) Render(stmt statement.Statement) (string, error) {
	switch s := stmt.(type) {
	case statement.TableCreate:
		return d.b.TableCreate(s)
	case statement.IndexCreate:
		if s.IfNotExists {
			return "", unsupported("CREATE INDEX IF NOT EXISTS")
		}
		return d.b.IndexCreate(s, false)
	case statement.ForeignKeyCreate:
		if s.Table == "" {
			return "", emptyName("table name")
		}
		clause, err := d.b.ForeignKeyClause(s)
		if err != nil {
			return "", err
		}
		return "ALTER TABLE " + d.b.Quote(s.Table) + " ADD " + clause, nil
	case statement.TableAlter:
		return d.renderAlter(s)
	case statement.TableDrop:
		return d.b.TableDrop(s, s.Cascade)
	case statement.TableRename:
		if s.From == "" || s.To == "" {
			return "", emptyName("table name")
		}
		return "RENAME TABLE " + d.b.Quote(s.From) + " TO " + d.b.Quote(s.To), nil
	case statement.TableTruncate:
		return d.b.TableTruncate(s)
	case statement.IndexDrop:
		if s.Name == "" || s.Table == "" {
			return "", emptyName("index and table name")
		}
		if s.IfExists {
			return "", unsupported("DROP INDEX IF EXISTS")
		}
		return "DROP INDEX " + d.b.Quote(s.Name) + " ON " + d.b.Quote(s.Table), nil
	case statement.ForeignKeyDrop:
		if s.Name == "" || s.Table == "" {
			return "", emptyName("foreign key and table name")
		}
		return "ALTER TABLE " + d.b.Quote(s.Table) + " DROP FOREIGN KEY " + d.b.Quote(s.Name), nil
	case statement.TypeCreate, statement.TypeAlter, statement.TypeDrop:
		return "", unsupported("enum types")
	case nil:
		return "", fmt.Errorf("mysql: nil statement")
	}
	return "", unsupported(stmt.Kind().String())
}

func (d *Dialect) renderAlter(s statement.TableAlter) (string, error) {
	if s.Table == "" {
		return "", emptyName("table name")
	}
	if len(s.Ops) == 0 {
		return "", fmt.Errorf("alter table %s: no operations", s.Table)
	}
	parts := make([]string, 0, len(s.Ops))
	for _, op := range s.Ops {
		switch op.Op {
		case statement.AddColumn, statement.ModifyColumn:
			def, err := d.b.ColumnDef(op.Column, true)
			if err != nil {
				return "", err
			}
			if op.Op == statement.AddColumn {
				parts = append(parts, "ADD COLUMN "+def)
			} else {
				parts = append(parts, "MODIFY COLUMN "+def)
			}
		case statement.DropColumn:
			if op.Column.Name == "" {
				return "", emptyName("column name")
			}
			parts = append(parts, "DROP COLUMN "+d.b.Quote(op.Column.Name))
		case statement.RenameColumn:
			if op.From == "" || op.To == "" {
				return "", emptyName("column name")
			}
			parts = append(parts, "RENAME COLUMN "+d.b.Quote(op.From)+" TO "+d.b.Quote(op.To))
		default:
			return "", unsupported(fmt.Sprintf("alter op %d", op.Op))
		}
	}
	return "ALTER TABLE " + d.b.Quote(s.Table) + " " + strings.Join(parts, ", "), nil
}

// BuildProbe queries information_schema for the current database.
func (d *Dialect) BuildProbe(p schemamgr.Probe) schemamgr.ProbeQuery {
	switch p.Kind {
	case schemamgr.ProbeTable:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_table FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = ?",
			Args: []any{p.Table},
		}
	case schemamgr.ProbeColumn:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_column FROM information_schema.columns WHERE table_schema = DATABASE() AND table_name = ? AND column_name = ?",
			Args: []any{p.Table, p.Target},
		}
	case schemamgr.ProbeIndex:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_index FROM information_schema.statistics WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?",
			Args: []any{p.Table, p.Target},
		}
	}
	return schemamgr.ProbeQuery{}
}

var (
	_ schemamgr.Dialect      = (*Dialect)(nil)
	_ schemamgr.Introspector = (*Dialect)(nil)
)
