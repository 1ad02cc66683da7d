package statement

// IndexCreate describes CREATE INDEX.
type IndexCreate struct {
	Name        string
	Table       string
	Columns     []string
	Unique      bool
	IfNotExists bool
}

func (IndexCreate) Kind() Kind { return KindIndexCreate }

// IndexDrop describes DROP INDEX. Table is required by MySQL.
type IndexDrop struct {
	Name     string
	Table    string
	IfExists bool
}

func (IndexDrop) Kind() Kind { return KindIndexDrop }

// ForeignKeyAction is the referential action for ON DELETE / ON UPDATE.
type ForeignKeyAction string

const (
	NoAction   ForeignKeyAction = ""
	Restrict   ForeignKeyAction = "RESTRICT"
	Cascade    ForeignKeyAction = "CASCADE"
	SetNull    ForeignKeyAction = "SET NULL"
	SetDefault ForeignKeyAction = "SET DEFAULT"
)

// ForeignKeyCreate describes adding a foreign key constraint to an existing table.
// Inside TableCreate the same value is rendered as an inline constraint.
type ForeignKeyCreate struct {
	Name       string
	Table      string
	Columns    []string
	RefTable   string
	RefColumns []string
	OnDelete   ForeignKeyAction
	OnUpdate   ForeignKeyAction
}

func (ForeignKeyCreate) Kind() Kind { return KindForeignKeyCreate }

// ForeignKeyDrop describes dropping a named foreign key constraint.
type ForeignKeyDrop struct {
	Name  string
	Table string
}

func (ForeignKeyDrop) Kind() Kind { return KindForeignKeyDrop }
