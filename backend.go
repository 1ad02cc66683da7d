package schemamgr

import (
	"fmt"
	"strings"
)

// Backend names the database engine a connection targets.
type Backend string

// The closed set of supported engines.
const (
	MySQL    Backend = "mysql"
	Postgres Backend = "postgres"
	SQLite   Backend = "sqlite"
)

var knownBackends = []Backend{MySQL, Postgres, SQLite}

// driverBackends maps database/sql driver names to the engine they speak.
var driverBackends = map[string]Backend{
	"mysql":    MySQL,
	"postgres": Postgres,
	"pgx":      Postgres,
	"sqlite3":  SQLite,
	"sqlite":   SQLite,
}

func (b Backend) String() string { return string(b) }

// Valid reports whether b is one of the supported engines.
func (b Backend) Valid() bool {
	for _, k := range knownBackends {
		if b == k {
			return true
		}
	}
	return false
}

// ParseBackend resolves a backend name or a database/sql driver name.
func ParseBackend(name string) (Backend, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if b, ok := driverBackends[n]; ok {
		return b, nil
	}
	if n == "postgresql" {
		return Postgres, nil
	}
	return "", fmt.Errorf("schemamgr: unknown backend %q", name)
}
