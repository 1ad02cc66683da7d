package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burugo/schemamgr"
	_ "github.com/burugo/schemamgr/drivers/db/sqlite"
	"github.com/burugo/schemamgr/internal/testutil"
	"github.com/burugo/schemamgr/statement"
)

func openTestDB(t *testing.T) *schemamgr.DB {
	t.Helper()
	db, err := schemamgr.Open(context.Background(), schemamgr.Config{
		Backend: schemamgr.SQLite,
		DSN:     filepath.Join(t.TempDir(), "schema.db"),
		Logger:  testutil.NewTestLogger(t),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func usersTable() statement.TableCreate {
	return statement.TableCreate{
		Table: "users",
		Columns: []statement.ColumnDef{
			{Name: "id", Type: statement.TypeInteger, PrimaryKey: true, AutoIncrement: true},
			{Name: "name", Type: statement.TypeString, NotNull: true},
		},
	}
}

func TestManager_HasTableAfterCreate(t *testing.T) {
	ctx := context.Background()
	m := schemamgr.New(openTestDB(t))
	assert.Equal(t, schemamgr.SQLite, m.Backend())

	ok, err := m.HasTable(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.CreateTable(ctx, usersTable()))

	ok, err = m.HasTable(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestManager_HasColumnAfterAlter(t *testing.T) {
	ctx := context.Background()
	m := schemamgr.New(openTestDB(t))
	require.NoError(t, m.CreateTable(ctx, usersTable()))

	ok, err := m.HasColumn(ctx, "users", "email")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.AlterTable(ctx, statement.TableAlter{
		Table: "users",
		Ops:   []statement.AlterOp{{Op: statement.AddColumn, Column: statement.Column("email", statement.TypeString)}},
	}))

	ok, err = m.HasColumn(ctx, "users", "email")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.HasColumn(ctx, "missing", "email")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_IndexLifecycle(t *testing.T) {
	ctx := context.Background()
	m := schemamgr.New(openTestDB(t))
	require.NoError(t, m.CreateTable(ctx, usersTable()))

	ok, err := m.HasIndex(ctx, "users", "idx_users_name")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.CreateIndex(ctx, statement.IndexCreate{
		Name: "idx_users_name", Table: "users", Columns: []string{"name"}, Unique: true,
	}))
	ok, err = m.HasIndex(ctx, "users", "idx_users_name")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, m.DropIndex(ctx, statement.IndexDrop{Name: "idx_users_name", Table: "users"}))
	ok, err = m.HasIndex(ctx, "users", "idx_users_name")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_RenameTruncateDrop(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	m := schemamgr.New(db)
	require.NoError(t, m.CreateTable(ctx, usersTable()))

	_, err := db.Exec(ctx, `INSERT INTO "users" ("name") VALUES (?), (?)`, "ada", "grace")
	require.NoError(t, err)

	require.NoError(t, m.RenameTable(ctx, statement.TableRename{From: "users", To: "people"}))
	ok, err := m.HasTable(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.TruncateTable(ctx, statement.TableTruncate{Table: "people"}))
	row, err := db.QueryOne(ctx, `SELECT COUNT(*) AS n FROM "people"`)
	require.NoError(t, err)
	assert.EqualValues(t, 0, row["n"])

	require.NoError(t, m.DropTable(ctx, statement.TableDrop{Tables: []string{"people"}}))
	ok, err = m.HasTable(ctx, "people")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.DropTable(ctx, statement.TableDrop{Tables: []string{"people"}, IfExists: true}))
}

func TestManager_Errors(t *testing.T) {
	ctx := context.Background()
	m := schemamgr.New(openTestDB(t))
	require.NoError(t, m.CreateTable(ctx, usersTable()))

	err := m.CreateTable(ctx, usersTable())
	require.Error(t, err)
	assert.True(t, schemamgr.IsDataError(err))
	assert.Contains(t, err.Error(), "already exists")

	err = m.CreateForeignKey(ctx, statement.ForeignKeyCreate{
		Name: "fk", Table: "users", Columns: []string{"id"}, RefTable: "users", RefColumns: []string{"id"},
	})
	assert.ErrorIs(t, err, statement.ErrUnsupported)
	assert.False(t, schemamgr.IsDataError(err))

	err = m.CreateType(ctx, statement.TypeCreate{Name: "mood", Values: []string{"happy"}})
	assert.ErrorIs(t, err, statement.ErrUnsupported)
}

func TestManager_InsideTransaction(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	txm := schemamgr.New(tx)
	require.NoError(t, txm.CreateTable(ctx, usersTable()))

	ok, err := txm.HasTable(ctx, "users")
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, tx.Rollback())

	ok, err = schemamgr.New(db).HasTable(ctx, "users")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_DescribeTable(t *testing.T) {
	ctx := context.Background()
	m := schemamgr.New(openTestDB(t))

	info, err := m.DescribeTable(ctx, "users")
	require.NoError(t, err)
	assert.Nil(t, info)

	require.NoError(t, m.CreateTable(ctx, statement.TableCreate{
		Table: "users",
		Columns: []statement.ColumnDef{
			{Name: "id", Type: statement.TypeInteger, PrimaryKey: true, AutoIncrement: true},
			{Name: "email", Type: statement.TypeString, NotNull: true, Unique: true},
			{Name: "nickname", Type: statement.TypeText, Default: "'anon'"},
		},
	}))
	require.NoError(t, m.CreateIndex(ctx, statement.IndexCreate{
		Name: "idx_users_nick_email", Table: "users", Columns: []string{"nickname", "email"},
	}))

	info, err = m.DescribeTable(ctx, "users")
	require.NoError(t, err)
	require.NotNil(t, info)

	assert.Equal(t, []string{"id"}, info.PrimaryKey)
	require.Len(t, info.Columns, 3)
	assert.True(t, info.Column("id").IsPrimary)
	assert.False(t, info.Column("email").IsNullable)
	assert.True(t, info.Column("email").IsUnique)
	require.NotNil(t, info.Column("nickname").Default)
	assert.Equal(t, "'anon'", *info.Column("nickname").Default)

	var composite *schemamgr.IndexInfo
	for i := range info.Indexes {
		if info.Indexes[i].Name == "idx_users_nick_email" {
			composite = &info.Indexes[i]
		}
	}
	require.NotNil(t, composite)
	assert.Equal(t, []string{"nickname", "email"}, composite.Columns)
	assert.False(t, composite.Unique)
}
