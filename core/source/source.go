package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"id-check/core/database"
	"id-check/core/snapshot"
	"id-check/core/storage"
	"id-check/core/utils"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

const (
	SchemeFile   = "file://"
	SchemeObject = "s3://"
	SchemeTable  = "db://"
)

var (
	// ErrNoStorage is returned when an s3:// source has no storage client.
	ErrNoStorage = errors.New("no storage client configured")
	// ErrNoDatabase is returned when a db:// source has no database connection.
	ErrNoDatabase = errors.New("no database connection configured")
)

// Deps are the optional clients remote sources read through.
type Deps struct {
	Storage storage.Client
	DB      *gorm.DB
}

// Resolve turns a location into a snapshot source:
//
//	s3://bucket/path/to/object  object in a bucket
//	db://table/column           one column of a table
//	file:///path, /path, path   local file
//
// A malformed location is a *snapshot.ConfigError of kind InvalidSource. Missing
// clients are not checked here; they fail the load instead.
func Resolve(location string, deps Deps) (snapshot.Source, error) {
	switch {
	case strings.HasPrefix(location, SchemeObject):
		bucket, key, ok := strings.Cut(strings.TrimPrefix(location, SchemeObject), "/")
		if !ok || bucket == "" || key == "" {
			return nil, invalid(location, "expected s3://bucket/object")
		}
		return &Object{Client: deps.Storage, Bucket: bucket, Key: key}, nil

	case strings.HasPrefix(location, SchemeTable):
		table, column, ok := strings.Cut(strings.TrimPrefix(location, SchemeTable), "/")
		if !ok || !database.ValidIdentifier(table) || !database.ValidIdentifier(column) {
			return nil, invalid(location, "expected db://table/column")
		}
		return &Table{DB: deps.DB, Table: table, Column: column}, nil

	case strings.HasPrefix(location, SchemeFile):
		return resolveFile(location, strings.TrimPrefix(location, SchemeFile))

	default:
		return resolveFile(location, location)
	}
}

func resolveFile(location, path string) (snapshot.Source, error) {
	if path == "" {
		return nil, invalid(location, "empty path")
	}
	return File{Path: path}, nil
}

func invalid(location, reason string) error {
	return &snapshot.ConfigError{Kind: snapshot.InvalidSource, Source: location, Err: errors.New(reason)}
}

// File reads identifiers from a local file.
type File struct {
	Path string
}

func (f File) Open(ctx context.Context) (io.ReadCloser, error) {
	return os.Open(f.Path)
}

func (f File) String() string { return f.Path }

// Object reads identifiers from an object in a bucket.
type Object struct {
	Client storage.Client
	Bucket string
	Key    string
}

func (o *Object) Open(ctx context.Context) (io.ReadCloser, error) {
	if o.Client == nil {
		return nil, ErrNoStorage
	}
	exists, err := o.Client.BucketExists(ctx, o.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", o.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", o.Bucket)
	}
	if _, err := o.Client.StatObject(ctx, o.Bucket, o.Key, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", o.Key, err)
	}
	return o.Client.GetObject(ctx, o.Bucket, o.Key, minio.GetObjectOptions{})
}

func (o *Object) String() string {
	return SchemeObject + o.Bucket + "/" + o.Key
}

// Table reads identifiers from one column of a database table. Each non-null value
// becomes one line of the list, so values that are not identifiers are skipped the
// same way malformed tokens in a file are.
type Table struct {
	DB     *gorm.DB
	Table  string
	Column string
}

func (t *Table) Open(ctx context.Context) (io.ReadCloser, error) {
	if t.DB == nil {
		return nil, ErrNoDatabase
	}
	db := t.DB.WithContext(ctx)

	ok, err := database.HasColumn(db, t.Table, t.Column)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("table %s has no column %s", t.Table, t.Column)
	}

	rows, err := db.Table(t.Table).Select(t.Column).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query %s.%s: %w", t.Table, t.Column, err)
	}
	defer rows.Close()

	var buf bytes.Buffer
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %s.%s: %w", t.Table, t.Column, err)
		}
		if v == nil {
			continue
		}
		buf.WriteString(utils.ToString(v))
		buf.WriteByte('\n')
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s.%s: %w", t.Table, t.Column, err)
	}
	return io.NopCloser(&buf), nil
}

func (t *Table) String() string {
	return SchemeTable + t.Table + "/" + t.Column
}
