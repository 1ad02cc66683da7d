package schemamgr

import (
	"context"
	"log/slog"

	"github.com/burugo/schemamgr/statement"
)

// Manager applies schema changes and answers existence questions over one
// borrowed Conn. It never closes the connection and never starts or ends a
// transaction; pass a *Tx to run inside one.
type Manager struct {
	conn   Conn
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for configuration failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns a Manager over conn.
func New(conn Conn, opts ...Option) *Manager {
	m := &Manager{conn: conn, logger: discardLogger()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backend reports the engine of the underlying connection.
func (m *Manager) Backend() Backend {
	if m.conn == nil {
		return ""
	}
	return m.conn.Backend()
}

// Conn returns the underlying connection handle.
func (m *Manager) Conn() Conn { return m.conn }

// Exec renders and runs any statement.
func (m *Manager) Exec(ctx context.Context, stmt statement.Statement) error {
	if stmt == nil {
		return ErrNilStatement
	}
	return m.logConfigError(ctx, stmt.Kind().String(), execute(ctx, m.conn, stmt))
}

func (m *Manager) CreateTable(ctx context.Context, s statement.TableCreate) error {
	return m.Exec(ctx, s)
}

func (m *Manager) CreateIndex(ctx context.Context, s statement.IndexCreate) error {
	return m.Exec(ctx, s)
}

func (m *Manager) CreateForeignKey(ctx context.Context, s statement.ForeignKeyCreate) error {
	return m.Exec(ctx, s)
}

func (m *Manager) CreateType(ctx context.Context, s statement.TypeCreate) error {
	return m.Exec(ctx, s)
}

func (m *Manager) AlterTable(ctx context.Context, s statement.TableAlter) error {
	return m.Exec(ctx, s)
}

func (m *Manager) DropTable(ctx context.Context, s statement.TableDrop) error {
	return m.Exec(ctx, s)
}

func (m *Manager) RenameTable(ctx context.Context, s statement.TableRename) error {
	return m.Exec(ctx, s)
}

func (m *Manager) TruncateTable(ctx context.Context, s statement.TableTruncate) error {
	return m.Exec(ctx, s)
}

func (m *Manager) DropIndex(ctx context.Context, s statement.IndexDrop) error {
	return m.Exec(ctx, s)
}

func (m *Manager) DropForeignKey(ctx context.Context, s statement.ForeignKeyDrop) error {
	return m.Exec(ctx, s)
}

func (m *Manager) AlterType(ctx context.Context, s statement.TypeAlter) error {
	return m.Exec(ctx, s)
}

func (m *Manager) DropType(ctx context.Context, s statement.TypeDrop) error {
	return m.Exec(ctx, s)
}

// HasTable reports whether table exists in the connected schema.
func (m *Manager) HasTable(ctx context.Context, table string) (bool, error) {
	ok, err := probe(ctx, m.conn, Probe{Kind: ProbeTable, Table: table})
	return ok, m.logConfigError(ctx, "has table", err)
}

// HasColumn reports whether column exists on table.
func (m *Manager) HasColumn(ctx context.Context, table, column string) (bool, error) {
	ok, err := probe(ctx, m.conn, Probe{Kind: ProbeColumn, Table: table, Target: column})
	return ok, m.logConfigError(ctx, "has column", err)
}

// HasIndex reports whether an index named index exists on table.
func (m *Manager) HasIndex(ctx context.Context, table, index string) (bool, error) {
	ok, err := probe(ctx, m.conn, Probe{Kind: ProbeIndex, Table: table, Target: index})
	return ok, m.logConfigError(ctx, "has index", err)
}

// DescribeTable returns the columns and indexes of table, or nil when it does
// not exist. Dialects without introspection return statement.ErrUnsupported.
func (m *Manager) DescribeTable(ctx context.Context, table string) (*TableInfo, error) {
	info, err := describe(ctx, m.conn, table)
	return info, m.logConfigError(ctx, "describe table", err)
}

// logConfigError logs a missing-backend error and passes err through unchanged.
func (m *Manager) logConfigError(ctx context.Context, op string, err error) error {
	if IsConfigError(err) {
		m.logger.ErrorContext(ctx, "backend not available", "op", op, "error", err)
	}
	return err
}
