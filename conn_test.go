package schemamgr

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burugo/schemamgr/internal/testutil"
)

func newMockDB(t *testing.T, driver string) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db, err := NewDB(sqlx.NewDb(mockDB, driver), testutil.NewTestLogger(t))
	require.NoError(t, err)
	return db, mock
}

func TestNewDB_BackendFromDriverName(t *testing.T) {
	tests := []struct {
		driver string
		want   Backend
	}{
		{"sqlite3", SQLite},
		{"sqlite", SQLite},
		{"mysql", MySQL},
		{"postgres", Postgres},
		{"pgx", Postgres},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			db, _ := newMockDB(t, tt.driver)
			assert.Equal(t, tt.want, db.Backend())
			assert.Equal(t, tt.want, db.Backend())
			assert.Equal(t, tt.driver, db.SQLX().DriverName())
		})
	}
}

func TestNewDB_Errors(t *testing.T) {
	_, err := NewDB(nil, nil)
	assert.ErrorIs(t, err, ErrNilConn)

	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	_, err = NewDB(sqlx.NewDb(mockDB, "oracle"), nil)
	assert.Error(t, err)
}

func TestDB_Exec(t *testing.T) {
	ctx := context.Background()

	t.Run("rows affected", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `users`")).WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := db.Exec(ctx, "DELETE FROM `users`")
		require.NoError(t, err)
		assert.Equal(t, int64(3), n)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rebinds only with args", func(t *testing.T) {
		db, mock := newMockDB(t, "postgres")
		mock.ExpectExec(regexp.QuoteMeta("COMMENT ON TABLE t IS 'why?'")).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM t WHERE a = $1 AND b = $2")).
			WithArgs("x", 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		_, err := db.Exec(ctx, "COMMENT ON TABLE t IS 'why?'")
		require.NoError(t, err)
		_, err = db.Exec(ctx, "DELETE FROM t WHERE a = ? AND b = ?", "x", 2)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		db, mock := newMockDB(t, "sqlite3")
		driverErr := errors.New("no such table: users")
		mock.ExpectExec("DROP TABLE").WillReturnError(driverErr)

		_, err := db.Exec(ctx, `DROP TABLE "users"`)
		require.Error(t, err)
		assert.ErrorIs(t, err, driverErr)

		var de *DataError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "exec", de.Op)
		assert.Equal(t, `DROP TABLE "users"`, de.Query)
	})
}

func TestDB_QueryOne(t *testing.T) {
	ctx := context.Background()

	t.Run("first row", func(t *testing.T) {
		db, mock := newMockDB(t, "postgres")
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) > 0 AS has_table FROM pg_tables WHERE tablename = $1")).
			WithArgs("users").
			WillReturnRows(sqlmock.NewRows([]string{"has_table"}).AddRow(true))

		row, err := db.QueryOne(ctx, "SELECT COUNT(*) > 0 AS has_table FROM pg_tables WHERE tablename = ?", "users")
		require.NoError(t, err)
		ok, err := row.Bool("has_table")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no rows is nil", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"has_table"}))

		row, err := db.QueryOne(ctx, "SELECT 1 WHERE 1 = 0")
		require.NoError(t, err)
		assert.Nil(t, row)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock := newMockDB(t, "mysql")
		mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)

		_, err := db.QueryOne(ctx, "SELECT 1")
		assert.ErrorIs(t, err, assert.AnError)
		assert.True(t, IsDataError(err))
	})
}

func TestDB_Select(t *testing.T) {
	db, mock := newMockDB(t, "sqlite3")
	mock.ExpectQuery("SELECT name FROM sqlite_master").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a").AddRow("b"))

	var names []string
	require.NoError(t, db.Select(context.Background(), &names, "SELECT name FROM sqlite_master"))
	assert.Equal(t, []string{"a", "b"}, names)
}

func TestDB_BeginTx(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t, "mysql")
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ALTER TABLE `users` ADD COLUMN `email` VARCHAR(255)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, MySQL, tx.Backend())

	_, err = tx.Exec(ctx, "ALTER TABLE `users` ADD COLUMN `email` VARCHAR(255)")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewTx(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := sqlx.NewDb(mockDB, "pgx").Beginx()
	require.NoError(t, err)
	conn, err := NewTx(tx, nil)
	require.NoError(t, err)
	assert.Equal(t, Postgres, conn.Backend())
	require.NoError(t, conn.Commit())

	_, err = NewTx(nil, nil)
	assert.ErrorIs(t, err, ErrNilConn)
}
