package schemamgr

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultPingTimeout     = 5 * time.Second
)

// Config describes a database to open with Open.
type Config struct {
	// Backend selects the engine. It may be empty when Driver is set.
	Backend Backend
	// Driver overrides the dialect's default database/sql driver name
	// (e.g. "pgx" instead of "postgres").
	Driver string
	DSN    string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration

	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.MaxOpenConns <= 0 {
		c.MaxOpenConns = defaultMaxOpenConns
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = defaultMaxIdleConns
	}
	if c.ConnMaxLifetime <= 0 {
		c.ConnMaxLifetime = defaultConnMaxLifetime
	}
	if c.PingTimeout <= 0 {
		c.PingTimeout = defaultPingTimeout
	}
	if c.Logger == nil {
		c.Logger = discardLogger()
	}
	return c
}

// driverName resolves which database/sql driver to open.
func (c Config) driverName() (string, error) {
	if c.Driver != "" {
		b, err := ParseBackend(c.Driver)
		if err != nil {
			return "", err
		}
		if c.Backend != "" && b != c.Backend {
			return "", fmt.Errorf("schemamgr: driver %q does not speak backend %s", c.Driver, c.Backend)
		}
		return c.Driver, nil
	}
	if c.Backend == "" {
		return "", fmt.Errorf("schemamgr: config needs a backend or a driver")
	}
	d, err := LookupDialect(c.Backend)
	if err != nil {
		return "", err
	}
	return d.DriverName(), nil
}

// Open connects to the configured database, applies pool settings and pings it.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	cfg = cfg.withDefaults()
	driver, err := cfg.driverName()
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("schemamgr: empty DSN for driver %s", driver)
	}

	db, err := sqlx.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", driver, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	conn, err := NewDB(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	cfg.Logger.Debug("database opened", "backend", conn.Backend(), "driver", driver)
	return conn, nil
}
