package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	err = db.Exec("CREATE TABLE blocked_members (id INTEGER PRIMARY KEY, member_id INTEGER, note TEXT)").Error
	require.NoError(t, err)

	columns, err := GetTableColumns(db, "blocked_members")
	require.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}
	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "integer", colMap["member_id"])
	assert.Equal(t, "text", colMap["note"])

	// PRAGMA table_info returns no rows for an unknown table.
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)

	_, err = GetTableColumns(db, "x; DROP TABLE blocked_members")
	assert.Error(t, err)
}

func TestHasColumn(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE ids (member_id INTEGER)").Error)

	ok, err := HasColumn(db, "ids", "MEMBER_ID")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = HasColumn(db, "ids", "other")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("member_ids"))
	assert.True(t, ValidIdentifier("_t1"))
	assert.False(t, ValidIdentifier(""))
	assert.False(t, ValidIdentifier("1abc"))
	assert.False(t, ValidIdentifier("a-b"))
	assert.False(t, ValidIdentifier("a`b"))
}
