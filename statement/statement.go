// Package statement holds engine-independent descriptions of schema changes.
//
// Values in this package are plain data. They are rendered into SQL by a
// dialect registered with the schemamgr package and are never mutated by it.
package statement

import "errors"

// ErrUnsupported is returned by a dialect when a statement cannot be expressed
// for its engine (e.g. enum types on SQLite).
var ErrUnsupported = errors.New("statement: not supported by dialect")

// Kind identifies the schema change a Statement describes.
type Kind int

const (
	KindTableCreate Kind = iota + 1
	KindIndexCreate
	KindForeignKeyCreate
	KindTypeCreate
	KindTableAlter
	KindTableDrop
	KindTableRename
	KindTableTruncate
	KindIndexDrop
	KindForeignKeyDrop
	KindTypeAlter
	KindTypeDrop
)

var kindNames = map[Kind]string{
	KindTableCreate:      "create table",
	KindIndexCreate:      "create index",
	KindForeignKeyCreate: "create foreign key",
	KindTypeCreate:       "create type",
	KindTableAlter:       "alter table",
	KindTableDrop:        "drop table",
	KindTableRename:      "rename table",
	KindTableTruncate:    "truncate table",
	KindIndexDrop:        "drop index",
	KindForeignKeyDrop:   "drop foreign key",
	KindTypeAlter:        "alter type",
	KindTypeDrop:         "drop type",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Statement is a renderable, engine-independent schema change.
type Statement interface {
	Kind() Kind
}

// Compile-time checks.
var (
	_ Statement = TableCreate{}
	_ Statement = IndexCreate{}
	_ Statement = ForeignKeyCreate{}
	_ Statement = TypeCreate{}
	_ Statement = TableAlter{}
	_ Statement = TableDrop{}
	_ Statement = TableRename{}
	_ Statement = TableTruncate{}
	_ Statement = IndexDrop{}
	_ Statement = ForeignKeyDrop{}
	_ Statement = TypeAlter{}
	_ Statement = TypeDrop{}
)
