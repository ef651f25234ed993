// Package source locates the identifier lists snapshots are built from.
//
// A location string selects the backend:
//
//   - s3://bucket/object : an object in S3 or MinIO (core/storage)
//   - db://table/column  : a column of a MySQL or SQLite table (core/database)
//   - anything else      : a local file, optionally prefixed with file://
//
// Every backend implements snapshot.Source, so the snapshot package never knows
// where its bytes come from.
package source
