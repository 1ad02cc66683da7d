package statement

// TypeCreate describes creating an enumerated type.
type TypeCreate struct {
	Name   string
	Values []string
}

func (TypeCreate) Kind() Kind { return KindTypeCreate }

// TypeAlterOpKind is the action of an ALTER TYPE statement.
type TypeAlterOpKind int

const (
	AddValue TypeAlterOpKind = iota + 1
	RenameValue
	RenameType
)

// TypeAlter describes ALTER TYPE.
//
// AddValue uses Value, with optional Before or After placement and IfNotExists.
// RenameValue renames Value to NewName. RenameType renames the type to NewName.
type TypeAlter struct {
	Name        string
	Op          TypeAlterOpKind
	Value       string
	NewName     string
	Before      string
	After       string
	IfNotExists bool
}

func (TypeAlter) Kind() Kind { return KindTypeAlter }

// TypeDrop describes DROP TYPE.
type TypeDrop struct {
	Names    []string
	IfExists bool
	Cascade  bool
}

func (TypeDrop) Kind() Kind { return KindTypeDrop }
