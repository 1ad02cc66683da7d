//go:build !no_sqlite

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burugo/schemamgr"
	"github.com/burugo/schemamgr/statement"
)

func seedDB(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "cli.db")

	db, err := schemamgr.Open(ctx, schemamgr.Config{Backend: schemamgr.SQLite, DSN: dsn})
	require.NoError(t, err)
	defer db.Close()

	m := schemamgr.New(db)
	require.NoError(t, m.CreateTable(ctx, statement.TableCreate{
		Table: "users",
		Columns: []statement.ColumnDef{
			{Name: "id", Type: statement.TypeInteger, PrimaryKey: true, AutoIncrement: true},
			{Name: "email", Type: statement.TypeString, NotNull: true},
		},
	}))
	require.NoError(t, m.CreateIndex(ctx, statement.IndexCreate{
		Name: "idx_users_email", Table: "users", Columns: []string{"email"}, Unique: true,
	}))
	return dsn
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestBackendsCommand(t *testing.T) {
	out, err := run(t, "backends")
	require.NoError(t, err)
	assert.Regexp(t, `(?m)^sqlite\s+sqlite3? \((cgo|purego)\)$`, out)
}

func TestHasCommands(t *testing.T) {
	dsn := seedDB(t)

	tests := []struct {
		args []string
		want string
	}{
		{[]string{"has-table", "users"}, "true\n"},
		{[]string{"has-table", "ghosts"}, "false\n"},
		{[]string{"has-column", "users", "email"}, "true\n"},
		{[]string{"has-column", "users", "age"}, "false\n"},
		{[]string{"has-index", "users", "idx_users_email"}, "true\n"},
		{[]string{"has-index", "users", "idx_missing"}, "false\n"},
	}
	for _, tt := range tests {
		args := append([]string{"--backend", "sqlite", "--dsn", dsn}, tt.args...)
		out, err := run(t, args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}
}

func TestDescribeCommand(t *testing.T) {
	dsn := seedDB(t)

	out, err := run(t, "-b", "sqlite", "--dsn", dsn, "describe", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "Table: users")
	assert.Contains(t, out, "email")
	assert.Contains(t, out, "idx_users_email")

	_, err = run(t, "-b", "sqlite", "--dsn", dsn, "describe", "ghosts")
	assert.ErrorContains(t, err, `table "ghosts" does not exist`)
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "--dsn", "x.db", "has-table", "users")
	assert.ErrorContains(t, err, "no backend")

	_, err = run(t, "--backend", "oracle", "--dsn", "x", "has-table", "users")
	assert.Error(t, err)

	_, err = run(t, "has-column", "users")
	assert.Error(t, err)
}
