package source_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"id-check/core/database"
	"id-check/core/snapshot"
	"id-check/core/source"
	"id-check/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"PlainFile", "/etc/idcheck/ids.txt", "/etc/idcheck/ids.txt"},
		{"RelativeFile", "ids.txt", "ids.txt"},
		{"FileScheme", "file:///etc/ids.txt", "/etc/ids.txt"},
		{"Object", "s3://lists/blocked/ids.txt", "s3://lists/blocked/ids.txt"},
		{"Table", "db://blocked_members/member_id", "db://blocked_members/member_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := source.Resolve(tt.location, source.Deps{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, src.String())
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, location := range []string{
		"",
		"file://",
		"s3://",
		"s3://bucket",
		"s3://bucket/",
		"s3:///key",
		"db://table",
		"db://table/",
		"db://bad-table/id",
		"db://t/id;drop",
	} {
		t.Run(location, func(t *testing.T) {
			src, err := source.Resolve(location, source.Deps{})
			assert.Nil(t, src)
			assert.ErrorIs(t, err, snapshot.ErrInvalidSource)
		})
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("3,1,2"), 0o644))

	src, err := source.Resolve(path, source.Deps{})
	require.NoError(t, err)

	s, err := snapshot.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, s.IDs())
}

func TestObject(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "lists").Return(true, nil)
		client.On("StatObject", mock.Anything, "lists", "blocked.txt", mock.Anything).
			Return(minio.ObjectInfo{Key: "blocked.txt", Size: 8}, nil)
		client.On("GetObject", mock.Anything, "lists", "blocked.txt", mock.Anything).
			Return(io.NopCloser(strings.NewReader("20 10,30")), nil)

		src, err := source.Resolve("s3://lists/blocked.txt", source.Deps{Storage: client})
		require.NoError(t, err)

		s, err := snapshot.Load(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, []uint64{10, 20, 30}, s.IDs())
		assert.Equal(t, "s3://lists/blocked.txt", s.Source())
		client.AssertExpectations(t)
	})

	t.Run("MissingBucket", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "lists").Return(false, nil)

		src := &source.Object{Client: client, Bucket: "lists", Key: "blocked.txt"}
		_, err := snapshot.Load(context.Background(), src)
		assert.ErrorIs(t, err, snapshot.ErrIOFailure)
		assert.Contains(t, err.Error(), "bucket lists does not exist")
	})

	t.Run("MissingObject", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "lists").Return(true, nil)
		client.On("StatObject", mock.Anything, "lists", "gone.txt", mock.Anything).
			Return(nil, assert.AnError)

		src := &source.Object{Client: client, Bucket: "lists", Key: "gone.txt"}
		_, err := snapshot.Load(context.Background(), src)
		assert.ErrorIs(t, err, snapshot.ErrIOFailure)
		assert.ErrorIs(t, err, assert.AnError)
		client.AssertNotCalled(t, "GetObject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("BucketError", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "lists").Return(false, assert.AnError)

		src := &source.Object{Client: client, Bucket: "lists", Key: "k"}
		_, err := snapshot.Load(context.Background(), src)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("NoClient", func(t *testing.T) {
		src, err := source.Resolve("s3://lists/blocked.txt", source.Deps{})
		require.NoError(t, err)

		_, err = snapshot.Load(context.Background(), src)
		assert.ErrorIs(t, err, snapshot.ErrIOFailure)
		assert.ErrorIs(t, err, source.ErrNoStorage)
	})
}

func setupTable(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE blocked_members (id INTEGER PRIMARY KEY, member_id INTEGER, note TEXT)").Error)
	require.NoError(t, db.Exec(`INSERT INTO blocked_members (member_id, note) VALUES
		(300, 'a'), (100, 'b'), (NULL, 'c'), (200, '7x')`).Error)
	return db
}

func TestTable(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db := setupTable(t)

		src, err := source.Resolve("db://blocked_members/member_id", source.Deps{DB: db})
		require.NoError(t, err)

		s, err := snapshot.Load(context.Background(), src)
		require.NoError(t, err)
		assert.Equal(t, []uint64{100, 200, 300}, s.IDs())
		assert.Equal(t, 0, s.Skipped())
	})

	t.Run("TextColumnSkipsGarbage", func(t *testing.T) {
		db := setupTable(t)

		s, err := snapshot.Load(context.Background(), &source.Table{DB: db, Table: "blocked_members", Column: "note"})
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
		assert.Equal(t, 4, s.Skipped())
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		db := setupTable(t)

		_, err := snapshot.Load(context.Background(), &source.Table{DB: db, Table: "blocked_members", Column: "nope"})
		assert.ErrorIs(t, err, snapshot.ErrIOFailure)
		assert.Contains(t, err.Error(), "has no column nope")
	})

	t.Run("NoDatabase", func(t *testing.T) {
		_, err := snapshot.Load(context.Background(), &source.Table{Table: "t", Column: "c"})
		assert.ErrorIs(t, err, source.ErrNoDatabase)
	})
}
