// Package postgres registers the PostgreSQL dialect with schemamgr.
//
// Both lib/pq ("postgres", the default) and pgx ("pgx") are linked; choose
// one with schemamgr.Config.Driver.
package postgres

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/lib/pq"

	"github.com/burugo/schemamgr"
	"github.com/burugo/schemamgr/internal/sqlbuilder"
	"github.com/burugo/schemamgr/statement"
)

func init() {
	schemamgr.RegisterDialect(New())
}

// PostgresDialector implements the sqlbuilder.Dialector interface for PostgreSQL.
type PostgresDialector struct{}

func (PostgresDialector) Quote(identifier string) string {
	return pq.QuoteIdentifier(identifier)
}

func (PostgresDialector) QuoteLiteral(value string) string {
	return pq.QuoteLiteral(value)
}

// AutoIncrement is empty: the SERIAL types carry the sequence.
func (PostgresDialector) AutoIncrement() string { return "" }

func (PostgresDialector) ColumnType(col statement.ColumnDef) (string, error) {
	if col.AutoIncrement {
		switch col.Type {
		case statement.TypeInteger:
			return "SERIAL", nil
		case statement.TypeBigInteger:
			return "BIGSERIAL", nil
		case statement.TypeSmallInteger:
			return "SMALLSERIAL", nil
		}
		return "", fmt.Errorf("postgres: auto-increment column %q must be an integer: %w", col.Name, statement.ErrUnsupported)
	}
	switch col.Type {
	case statement.TypeInteger:
		return "INTEGER", nil
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
		return "REAL", nil
	case statement.TypeDouble:
		return "DOUBLE PRECISION", nil
	case statement.TypeDecimal:
		if col.Precision > 0 {
			return fmt.Sprintf("NUMERIC(%d,%d)", col.Precision, col.Scale), nil
		}
		return "NUMERIC", nil
	case statement.TypeDate:
		return "DATE", nil
	case statement.TypeTimestamp:
		return "TIMESTAMP", nil
	case statement.TypeBinary:
		return "BYTEA", nil
	case statement.TypeJSON:
		return "JSONB", nil
	case statement.TypeUUID:
		return "UUID", nil
	case statement.TypeCustom:
		if col.CustomType == "" {
			return "", fmt.Errorf("postgres: column %q: empty custom type", col.Name)
		}
		return col.CustomType, nil
	}
	return "", fmt.Errorf("postgres: column %q type %d: %w", col.Name, col.Type, statement.ErrUnsupported)
}

// Dialect renders statements and probes for PostgreSQL, including enum types.
type Dialect struct {
	b *sqlbuilder.Builder
}

func New() *Dialect {
	return &Dialect{b: sqlbuilder.New(PostgresDialector{})}
}

func (d *Dialect) Backend() schemamgr.Backend { return schemamgr.Postgres }
func (d *Dialect) DriverName() string         { return "postgres" }

func unsupported(what string) error {
	return fmt.Errorf("postgres: %s: %w", what, statement.ErrUnsupported)
}

func emptyName(what string) error {
	return fmt.Errorf("%w: %s", sqlbuilder.ErrEmptyName, what)
}

func (d *Dialect) Render(stmt statement.Statement) (string, error) {
	switch s := stmt.(type) {
	case statement.TableCreate:
		return d.b.TableCreate(s)
	case statement.IndexCreate:
		return d.b.IndexCreate(s, s.IfNotExists)
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
		return d.b.TableRename(s)
	case statement.TableTruncate:
		return d.b.TableTruncate(s)
	case statement.IndexDrop:
		return d.b.IndexDrop(s)
	case statement.ForeignKeyDrop:
		if s.Name == "" || s.Table == "" {
			return "", emptyName("constraint and table name")
		}
		return "ALTER TABLE " + d.b.Quote(s.Table) + " DROP CONSTRAINT " + d.b.Quote(s.Name), nil
	case statement.TypeCreate:
		if s.Name == "" {
			return "", emptyName("type name")
		}
		return fmt.Sprintf("CREATE TYPE %s AS ENUM (%s)", d.b.Quote(s.Name), d.b.QuoteLiteralList(s.Values)), nil
	case statement.TypeAlter:
		return d.renderTypeAlter(s)
	case statement.TypeDrop:
		if len(s.Names) == 0 {
			return "", emptyName("type name")
		}
		var sb strings.Builder
		sb.WriteString("DROP TYPE ")
		if s.IfExists {
			sb.WriteString("IF EXISTS ")
		}
		sb.WriteString(d.b.QuoteList(s.Names))
		if s.Cascade {
			sb.WriteString(" CASCADE")
		}
		return sb.String(), nil
	case nil:
		return "", fmt.Errorf("postgres: nil statement")
	}
	return "", unsupported(stmt.Kind().String())
}

// renderAlter joins operations into one ALTER TABLE. RENAME COLUMN cannot be
// combined with other actions in PostgreSQL, so it must be the only one.
func (d *Dialect) renderAlter(s statement.TableAlter) (string, error) {
	if s.Table == "" {
		return "", emptyName("table name")
	}
	if len(s.Ops) == 0 {
		return "", fmt.Errorf("alter table %s: no operations", s.Table)
	}
	prefix := "ALTER TABLE " + d.b.Quote(s.Table) + " "
	parts := make([]string, 0, len(s.Ops))
	for _, op := range s.Ops {
		switch op.Op {
		case statement.AddColumn:
			def, err := d.b.ColumnDef(op.Column, true)
			if err != nil {
				return "", err
			}
			parts = append(parts, "ADD COLUMN "+def)
		case statement.DropColumn:
			if op.Column.Name == "" {
				return "", emptyName("column name")
			}
			parts = append(parts, "DROP COLUMN "+d.b.Quote(op.Column.Name))
		case statement.ModifyColumn:
			modify, err := d.modifyColumn(op.Column)
			if err != nil {
				return "", err
			}
			parts = append(parts, modify...)
		case statement.RenameColumn:
			if len(s.Ops) > 1 {
				return "", unsupported("RENAME COLUMN combined with other alter operations")
			}
			if op.From == "" || op.To == "" {
				return "", emptyName("column name")
			}
			return prefix + "RENAME COLUMN " + d.b.Quote(op.From) + " TO " + d.b.Quote(op.To), nil
		default:
			return "", unsupported(fmt.Sprintf("alter op %d", op.Op))
		}
	}
	return prefix + strings.Join(parts, ", "), nil
}

func (d *Dialect) modifyColumn(col statement.ColumnDef) ([]string, error) {
	if col.Name == "" {
		return nil, emptyName("column name")
	}
	// SERIAL is only a CREATE shorthand; ALTER COLUMN TYPE cannot add a sequence.
	if col.AutoIncrement {
		return nil, unsupported(fmt.Sprintf("making column %q auto-increment", col.Name))
	}
	typ, err := PostgresDialector{}.ColumnType(col)
	if err != nil {
		return nil, err
	}
	name := "ALTER COLUMN " + d.b.Quote(col.Name)
	parts := []string{name + " TYPE " + typ}
	if col.NotNull {
		parts = append(parts, name+" SET NOT NULL")
	} else {
		parts = append(parts, name+" DROP NOT NULL")
	}
	if col.Default != "" {
		parts = append(parts, name+" SET DEFAULT "+col.Default)
	}
	return parts, nil
}

func (d *Dialect) renderTypeAlter(s statement.TypeAlter) (string, error) {
	if s.Name == "" {
		return "", emptyName("type name")
	}
	prefix := "ALTER TYPE " + d.b.Quote(s.Name) + " "
	switch s.Op {
	case statement.AddValue:
		if s.Before != "" && s.After != "" {
			return "", fmt.Errorf("alter type %s: BEFORE and AFTER are exclusive", s.Name)
		}
		var sb strings.Builder
		sb.WriteString(prefix + "ADD VALUE ")
		if s.IfNotExists {
			sb.WriteString("IF NOT EXISTS ")
		}
		sb.WriteString(pq.QuoteLiteral(s.Value))
		if s.Before != "" {
			sb.WriteString(" BEFORE " + pq.QuoteLiteral(s.Before))
		}
		if s.After != "" {
			sb.WriteString(" AFTER " + pq.QuoteLiteral(s.After))
		}
		return sb.String(), nil
	case statement.RenameValue:
		if s.Value == "" || s.NewName == "" {
			return "", fmt.Errorf("alter type %s: rename value needs Value and NewName", s.Name)
		}
		return prefix + "RENAME VALUE " + pq.QuoteLiteral(s.Value) + " TO " + pq.QuoteLiteral(s.NewName), nil
	case statement.RenameType:
		if s.NewName == "" {
			return "", emptyName("new type name")
		}
		return prefix + "RENAME TO " + d.b.Quote(s.NewName), nil
	}
	return "", unsupported(fmt.Sprintf("alter type op %d", s.Op))
}

// BuildProbe queries the catalogs of the current schema.
func (d *Dialect) BuildProbe(p schemamgr.Probe) schemamgr.ProbeQuery {
	switch p.Kind {
	case schemamgr.ProbeTable:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_table FROM pg_tables WHERE schemaname = CURRENT_SCHEMA() AND tablename = ?",
			Args: []any{p.Table},
		}
	case schemamgr.ProbeColumn:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_column FROM information_schema.columns WHERE table_schema = CURRENT_SCHEMA() AND table_name = ? AND column_name = ?",
			Args: []any{p.Table, p.Target},
		}
	case schemamgr.ProbeIndex:
		return schemamgr.ProbeQuery{
			SQL:  "SELECT COUNT(*) > 0 AS has_index FROM pg_indexes WHERE schemaname = CURRENT_SCHEMA() AND tablename = ? AND indexname = ?",
			Args: []any{p.Table, p.Target},
		}
	}
	return schemamgr.ProbeQuery{}
}

var (
	_ schemamgr.Dialect      = (*Dialect)(nil)
	_ schemamgr.Introspector = (*Dialect)(nil)
)
