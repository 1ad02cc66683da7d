package schemamgr

import (
	"fmt"
	"strings"
)

// Row is a single result row keyed by column name, as produced by sqlx MapScan.
type Row map[string]any

// Bool reads column as a boolean. Engines report COUNT(*) > 0 differently
// (bool on Postgres, 0/1 integers on MySQL and SQLite, sometimes as text), so
// all of those spellings are accepted. Anything else is a decode error.
func (r Row) Bool(column string) (bool, error) {
	v, ok := r[column]
	if !ok {
		return false, decodeError(column, fmt.Errorf("%w: column missing from row", ErrDecode))
	}
	switch x := v.(type) {
	case bool:
		return x, nil
	case int64:
		return x != 0, nil
	case int:
		return x != 0, nil
	case int32:
		return x != 0, nil
	case int16:
		return x != 0, nil
	case int8:
		return x != 0, nil
	case uint:
		return x != 0, nil
	case uint64:
		return x != 0, nil
	case uint32:
		return x != 0, nil
	case uint16:
		return x != 0, nil
	case uint8:
		return x != 0, nil
	case []byte:
		return parseBoolText(column, string(x))
	case string:
		return parseBoolText(column, x)
	case nil:
		return false, decodeError(column, fmt.Errorf("%w: NULL", ErrDecode))
	default:
		return false, decodeError(column, fmt.Errorf("%w: unexpected type %T", ErrDecode, v))
	}
}

func parseBoolText(column, s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true":
		return true, nil
	case "0", "f", "false":
		return false, nil
	}
	return false, decodeError(column, fmt.Errorf("%w: %q is not a boolean", ErrDecode, s))
}

func decodeError(column string, err error) error {
	return &DataError{Op: "decode", Query: column, Err: err}
}
