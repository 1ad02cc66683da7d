package schemamgr

import (
	"errors"
	"fmt"
)

var (
	// ErrProbeNoResult is returned when an existence probe yields no row.
	// A well-formed probe always returns exactly one row, so this means the
	// probe itself is broken. It never means "does not exist".
	ErrProbeNoResult = errors.New("schemamgr: existence probe returned no result")

	// ErrBackendNotLinked is matched by UnsupportedBackendError. The engine's
	// driver package was not linked into this build; treat it as fatal.
	ErrBackendNotLinked = errors.New("schemamgr: backend support not linked")

	// ErrDecode is wrapped by the DataError returned when a result cell
	// cannot be read as the expected type.
	ErrDecode = errors.New("schemamgr: cannot decode column")

	ErrNilConn      = errors.New("schemamgr: nil connection")
	ErrNilStatement = errors.New("schemamgr: nil statement")
)

// DataError reports a failure of the underlying engine (or of decoding its
// result). Err is the driver error and stays reachable through errors.Is/As.
type DataError struct {
	Op    string // exec, query, select, decode
	Query string // statement text, or column name for decode
	Err   error
}

func (e *DataError) Error() string {
	if e.Op == "decode" {
		return fmt.Sprintf("schemamgr: decode column %q: %v", e.Query, e.Err)
	}
	return fmt.Sprintf("schemamgr: %s failed: %v", e.Op, e.Err)
}

func (e *DataError) Unwrap() error { return e.Err }

// UnsupportedBackendError is the configuration error for a backend whose
// dialect is not registered in the running build.
type UnsupportedBackendError struct {
	Backend   Backend
	Available []Backend
}

func (e *UnsupportedBackendError) Error() string {
	return fmt.Sprintf("schemamgr: %s support is not linked into this build (available: %v); import its drivers/db package", e.Backend, e.Available)
}

func (e *UnsupportedBackendError) Is(target error) bool {
	return target == ErrBackendNotLinked
}

// IsConfigError reports whether err is the fatal missing-backend error.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrBackendNotLinked)
}

// IsProbeNoResult reports whether err is or wraps ErrProbeNoResult.
func IsProbeNoResult(err error) bool {
	return errors.Is(err, ErrProbeNoResult)
}

// IsDataError reports whether err came from the engine or from decoding its result.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}
