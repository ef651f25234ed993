package source_test

import (
	"context"
	"io"
	"regexp"
	"testing"

	"id-check/core/snapshot"
	"id-check/core/source"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func expectColumns(mock sqlmock.Sqlmock, table string, fields ...string) {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, f := range fields {
		rows.AddRow(f, "bigint unsigned", "YES", "", nil, "")
	}
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `" + table + "`")).WillReturnRows(rows)
}

func TestTable_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	expectColumns(mock, "blocked_members", "id", "member_id")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `member_id` FROM `blocked_members`")).
		WillReturnRows(sqlmock.NewRows([]string{"member_id"}).
			AddRow(int64(30)).
			AddRow(nil).
			AddRow([]byte("10")).
			AddRow([]byte("n/a")))

	snap, err := snapshot.Load(context.Background(), &source.Table{DB: db, Table: "blocked_members", Column: "member_id"})
	require.NoError(t, err)
	assert.Equal(t, []uint64{10, 30}, snap.IDs())
	assert.Equal(t, 1, snap.Skipped())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_MySQLMissingColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	expectColumns(mock, "blocked_members", "id")

	_, err := (&source.Table{DB: db, Table: "blocked_members", Column: "member_id"}).Open(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no column member_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTable_MySQLQueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	expectColumns(mock, "blocked_members", "member_id")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `member_id` FROM `blocked_members`")).
		WillReturnError(io.ErrUnexpectedEOF)

	_, err := snapshot.Load(context.Background(), &source.Table{DB: db, Table: "blocked_members", Column: "member_id"})
	require.Error(t, err)
	assert.ErrorIs(t, err, snapshot.ErrIOFailure)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}
