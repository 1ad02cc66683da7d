package schemamgr

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// handle is the query surface shared by DB and Tx.
type handle struct {
	ext     sqlx.ExtContext
	backend Backend
	logger  *slog.Logger
}

func newHandle(ext sqlx.ExtContext, logger *slog.Logger) (handle, error) {
	b, err := ParseBackend(ext.DriverName())
	if err != nil {
		return handle{}, fmt.Errorf("schemamgr: driver %q: %w", ext.DriverName(), err)
	}
	if logger == nil {
		logger = discardLogger()
	}
	return handle{ext: ext, backend: b, logger: logger}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Backend reports the engine derived from the sqlx driver name.
func (h *handle) Backend() Backend { return h.backend }

// rebind converts '?' placeholders to the driver's bind style. Statements
// without arguments are sent untouched so literal '?' characters survive.
func (h *handle) rebind(query string, args []any) string {
	if len(args) == 0 {
		return query
	}
	return h.ext.Rebind(query)
}

// Exec runs a statement and returns rows affected. Drivers that cannot report
// a count for DDL yield 0.
func (h *handle) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	q := h.rebind(query, args)
	start := time.Now()
	res, err := h.ext.ExecContext(ctx, q, args...)
	if err != nil {
		h.logger.DebugContext(ctx, "exec failed", "backend", h.backend, "query", q, "duration", time.Since(start), "error", err)
		return 0, &DataError{Op: "exec", Query: q, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		n = 0
	}
	h.logger.DebugContext(ctx, "exec", "backend", h.backend, "query", q, "duration", time.Since(start), "rows", n)
	return n, nil
}

// QueryOne returns the first row of the result or nil when there are none.
func (h *handle) QueryOne(ctx context.Context, query string, args ...any) (Row, error) {
	q := h.rebind(query, args)
	start := time.Now()
	rows, err := h.ext.QueryxContext(ctx, q, args...)
	if err != nil {
		h.logger.DebugContext(ctx, "query failed", "backend", h.backend, "query", q, "duration", time.Since(start), "error", err)
		return nil, &DataError{Op: "query", Query: q, Err: err}
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, &DataError{Op: "query", Query: q, Err: err}
		}
		h.logger.DebugContext(ctx, "query", "backend", h.backend, "query", q, "duration", time.Since(start), "rows", 0)
		return nil, nil
	}
	row := make(map[string]any)
	if err := rows.MapScan(row); err != nil {
		return nil, &DataError{Op: "query", Query: q, Err: err}
	}
	h.logger.DebugContext(ctx, "query", "backend", h.backend, "query", q, "duration", time.Since(start), "rows", 1)
	return Row(row), nil
}

// Select scans all rows into dest, a pointer to a slice.
func (h *handle) Select(ctx context.Context, dest any, query string, args ...any) error {
	q := h.rebind(query, args)
	start := time.Now()
	if err := sqlx.SelectContext(ctx, h.ext, dest, q, args...); err != nil {
		h.logger.DebugContext(ctx, "select failed", "backend", h.backend, "query", q, "duration", time.Since(start), "error", err)
		return &DataError{Op: "select", Query: q, Err: err}
	}
	h.logger.DebugContext(ctx, "select", "backend", h.backend, "query", q, "duration", time.Since(start))
	return nil
}

// DB is a Conn backed by a sqlx connection pool. It is safe for concurrent use.
type DB struct {
	handle
	db *sqlx.DB
}

// NewDB wraps an open pool. The backend is taken from db.DriverName().
// A nil logger discards output.
func NewDB(db *sqlx.DB, logger *slog.Logger) (*DB, error) {
	if db == nil {
		return nil, ErrNilConn
	}
	h, err := newHandle(db, logger)
	if err != nil {
		return nil, err
	}
	return &DB{handle: h, db: db}, nil
}

// SQLX exposes the wrapped pool.
func (d *DB) SQLX() *sqlx.DB { return d.db }

// BeginTx starts a transaction. Statements run through the returned Tx are
// covered by it; committing or rolling back is up to the caller.
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	tx, err := d.db.BeginTxx(ctx, opts)
	if err != nil {
		return nil, &DataError{Op: "begin", Err: err}
	}
	return &Tx{handle: handle{ext: tx, backend: d.backend, logger: d.logger}, tx: tx}, nil
}

// Close closes the pool.
func (d *DB) Close() error { return d.db.Close() }

// Tx is a Conn bound to one transaction. Not safe for concurrent use.
type Tx struct {
	handle
	tx *sqlx.Tx
}

// NewTx wraps a transaction opened elsewhere.
func NewTx(tx *sqlx.Tx, logger *slog.Logger) (*Tx, error) {
	if tx == nil {
		return nil, ErrNilConn
	}
	h, err := newHandle(tx, logger)
	if err != nil {
		return nil, err
	}
	return &Tx{handle: h, tx: tx}, nil
}

func (t *Tx) Commit() error { return t.tx.Commit() }

func (t *Tx) Rollback() error { return t.tx.Rollback() }

var (
	_ Conn = (*DB)(nil)
	_ Conn = (*Tx)(nil)
)
