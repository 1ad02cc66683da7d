package statement

// ColumnType is the engine-independent type of a column.
type ColumnType int

const (
	TypeInteger ColumnType = iota + 1
	TypeBigInteger
	TypeSmallInteger
	TypeString // VARCHAR(Length), 255 when Length is zero
	TypeText
	TypeBoolean
	TypeFloat
	TypeDouble
	TypeDecimal // DECIMAL(Precision, Scale)
	TypeDate
	TypeTimestamp
	TypeBinary
	TypeJSON
	TypeUUID
	TypeCustom // CustomType is emitted verbatim, e.g. an enum type name
)

// ColumnDef describes a single column.
type ColumnDef struct {
	Name          string
	Type          ColumnType
	Length        int
	Precision     int
	Scale         int
	CustomType    string
	NotNull       bool
	PrimaryKey    bool
	AutoIncrement bool
	Unique        bool
	Default       string // raw SQL expression, empty for none
}

// Column returns a ColumnDef with the given name and type.
func Column(name string, typ ColumnType) ColumnDef {
	return ColumnDef{Name: name, Type: typ}
}

// TableCreate describes CREATE TABLE.
type TableCreate struct {
	Table       string
	IfNotExists bool
	Columns     []ColumnDef
	ForeignKeys []ForeignKeyCreate // rendered inline; Table is ignored
}

func (TableCreate) Kind() Kind { return KindTableCreate }

// AlterOpKind is the action of a single ALTER TABLE operation.
type AlterOpKind int

const (
	AddColumn AlterOpKind = iota + 1
	DropColumn
	RenameColumn
	ModifyColumn
)

// AlterOp is one operation inside ALTER TABLE.
//
// AddColumn and ModifyColumn use Column. DropColumn uses Column.Name.
// RenameColumn uses From and To.
type AlterOp struct {
	Op     AlterOpKind
	Column ColumnDef
	From   string
	To     string
}

// TableAlter describes ALTER TABLE with one or more operations.
type TableAlter struct {
	Table string
	Ops   []AlterOp
}

func (TableAlter) Kind() Kind { return KindTableAlter }

// TableDrop describes DROP TABLE.
type TableDrop struct {
	Tables   []string
	IfExists bool
	Cascade  bool
}

func (TableDrop) Kind() Kind { return KindTableDrop }

// TableRename describes renaming a table.
type TableRename struct {
	From string
	To   string
}

func (TableRename) Kind() Kind { return KindTableRename }

// TableTruncate describes removing all rows of a table.
type TableTruncate struct {
	Table string
}

func (TableTruncate) Kind() Kind { return KindTableTruncate }
