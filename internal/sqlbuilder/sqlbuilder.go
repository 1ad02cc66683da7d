// Package sqlbuilder renders the parts of schema statements that every dialect
// spells the same way. Dialects supply quoting and type names through Dialector
// and handle the statements that differ themselves.
package sqlbuilder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/burugo/schemamgr/statement"
)

// Dialector defines how to quote identifiers and name column types for a specific SQL dialect.
type Dialector interface {
	Quote(identifier string) string
	QuoteLiteral(value string) string
	ColumnType(col statement.ColumnDef) (string, error)
	// AutoIncrement is appended to every auto-increment column, after PRIMARY KEY
	// when the key is inline. Empty when the column type already implies it
	// (e.g. SERIAL).
	AutoIncrement() string
}

// ErrEmptyName is returned when a statement is missing a required identifier.
var ErrEmptyName = errors.New("sqlbuilder: empty identifier")

// Builder renders statement fragments with a Dialector.
type Builder struct {
	d Dialector
}

// New returns a Builder for the given dialect.
func New(d Dialector) *Builder {
	return &Builder{d: d}
}

// Quote quotes a single identifier.
func (b *Builder) Quote(identifier string) string {
	return b.d.Quote(identifier)
}

// QuoteList quotes and comma-joins identifiers.
func (b *Builder) QuoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = b.d.Quote(n)
	}
	return strings.Join(quoted, ", ")
}

// QuoteLiteralList quotes and comma-joins string literals.
func (b *Builder) QuoteLiteralList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = b.d.QuoteLiteral(v)
	}
	return strings.Join(quoted, ", ")
}

// ColumnDef renders a column definition. inlinePK controls whether PRIMARY KEY
// is emitted on the column; it is false when the table has a composite key.
func (b *Builder) ColumnDef(col statement.ColumnDef, inlinePK bool) (string, error) {
	if col.Name == "" {
		return "", fmt.Errorf("%w: column name", ErrEmptyName)
	}
	sqlType, err := b.d.ColumnType(col)
	if err != nil {
		return "", err
	}
	parts := []string{b.d.Quote(col.Name), sqlType}
	if col.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if col.Default != "" {
		parts = append(parts, "DEFAULT "+col.Default)
	}
	if col.PrimaryKey && inlinePK {
		parts = append(parts, "PRIMARY KEY")
	}
	if col.AutoIncrement {
		if ai := b.d.AutoIncrement(); ai != "" {
			parts = append(parts, ai)
		}
	}
	if col.Unique && !(col.PrimaryKey && inlinePK) {
		parts = append(parts, "UNIQUE")
	}
	return strings.Join(parts, " "), nil
}

// ForeignKeyClause renders a FOREIGN KEY constraint clause, without a leading ADD.
func (b *Builder) ForeignKeyClause(fk statement.ForeignKeyCreate) (string, error) {
	if len(fk.Columns) == 0 || len(fk.RefColumns) == 0 || fk.RefTable == "" {
		return "", fmt.Errorf("%w: foreign key %q needs columns and a referenced table", ErrEmptyName, fk.Name)
	}
	var sb strings.Builder
	if fk.Name != "" {
		sb.WriteString("CONSTRAINT ")
		sb.WriteString(b.d.Quote(fk.Name))
		sb.WriteString(" ")
	}
	fmt.Fprintf(&sb, "FOREIGN KEY (%s) REFERENCES %s (%s)",
		b.QuoteList(fk.Columns), b.d.Quote(fk.RefTable), b.QuoteList(fk.RefColumns))
	if fk.OnDelete != statement.NoAction {
		sb.WriteString(" ON DELETE " + string(fk.OnDelete))
	}
	if fk.OnUpdate != statement.NoAction {
		sb.WriteString(" ON UPDATE " + string(fk.OnUpdate))
	}
	return sb.String(), nil
}

// TableCreate renders CREATE TABLE with inline primary key and foreign keys.
func (b *Builder) TableCreate(s statement.TableCreate) (string, error) {
	if s.Table == "" {
		return "", fmt.Errorf("%w: table name", ErrEmptyName)
	}
	if len(s.Columns) == 0 {
		return "", fmt.Errorf("create table %s: no columns", s.Table)
	}

	var pkCols []string
	for _, c := range s.Columns {
		if c.PrimaryKey {
			pkCols = append(pkCols, c.Name)
		}
	}
	inlinePK := len(pkCols) == 1

	defs := make([]string, 0, len(s.Columns)+len(s.ForeignKeys)+1)
	for _, c := range s.Columns {
		def, err := b.ColumnDef(c, inlinePK)
		if err != nil {
			return "", fmt.Errorf("create table %s: %w", s.Table, err)
		}
		defs = append(defs, def)
	}
	if len(pkCols) > 1 {
		defs = append(defs, "PRIMARY KEY ("+b.QuoteList(pkCols)+")")
	}
	for _, fk := range s.ForeignKeys {
		clause, err := b.ForeignKeyClause(fk)
		if err != nil {
			return "", fmt.Errorf("create table %s: %w", s.Table, err)
		}
		defs = append(defs, clause)
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	if s.IfNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	sb.WriteString(b.d.Quote(s.Table))
	sb.WriteString(" ( ")
	sb.WriteString(strings.Join(defs, ", "))
	sb.WriteString(" )")
	return sb.String(), nil
}

// IndexCreate renders CREATE INDEX. ifNotExists lets a dialect suppress the clause.
func (b *Builder) IndexCreate(s statement.IndexCreate, ifNotExists bool) (string, error) {
	if s.Name == "" || s.Table == "" {
		return "", fmt.Errorf("%w: index and table name", ErrEmptyName)
	}
	if len(s.Columns) == 0 {
		return "", fmt.Errorf("create index %s: no columns", s.Name)
	}
	var sb strings.Builder
	sb.WriteString("CREATE ")
	if s.Unique {
		sb.WriteString("UNIQUE ")
	}
	sb.WriteString("INDEX ")
	if ifNotExists {
		sb.WriteString("IF NOT EXISTS ")
	}
	fmt.Fprintf(&sb, "%s ON %s (%s)", b.d.Quote(s.Name), b.d.Quote(s.Table), b.QuoteList(s.Columns))
	return sb.String(), nil
}

// IndexDrop renders DROP INDEX [IF EXISTS] name.
func (b *Builder) IndexDrop(s statement.IndexDrop) (string, error) {
	if s.Name == "" {
		return "", fmt.Errorf("%w: index name", ErrEmptyName)
	}
	if s.IfExists {
		return "DROP INDEX IF EXISTS " + b.d.Quote(s.Name), nil
	}
	return "DROP INDEX " + b.d.Quote(s.Name), nil
}

// TableDrop renders DROP TABLE. cascade is passed by dialects that support it.
func (b *Builder) TableDrop(s statement.TableDrop, cascade bool) (string, error) {
	if len(s.Tables) == 0 {
		return "", fmt.Errorf("%w: table name", ErrEmptyName)
	}
	var sb strings.Builder
	sb.WriteString("DROP TABLE ")
	if s.IfExists {
		sb.WriteString("IF EXISTS ")
	}
	sb.WriteString(b.QuoteList(s.Tables))
	if cascade {
		sb.WriteString(" CASCADE")
	}
	return sb.String(), nil
}

// TableRename renders ALTER TABLE a RENAME TO b.
func (b *Builder) TableRename(s statement.TableRename) (string, error) {
	if s.From == "" || s.To == "" {
		return "", fmt.Errorf("%w: table name", ErrEmptyName)
	}
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", b.d.Quote(s.From), b.d.Quote(s.To)), nil
}

// TableTruncate renders TRUNCATE TABLE name.
func (b *Builder) TableTruncate(s statement.TableTruncate) (string, error) {
	if s.Table == "" {
		return "", fmt.Errorf("%w: table name", ErrEmptyName)
	}
	return "TRUNCATE TABLE " + b.d.Quote(s.Table), nil
}
