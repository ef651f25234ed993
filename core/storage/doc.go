// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so identifier lists can be kept in AWS S3 or a
// self-hosted MinIO bucket and referenced as s3://bucket/object.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider, making it easy to mock
// storage interactions in unit tests (see core/storage/mocks).
//
//   - BucketExists: Verifies access to the bucket.
//   - StatObject: Reads object metadata (size, ETag).
//   - GetObject: Retrieves content as a stream.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, "lists", "blocked.txt", minio.GetObjectOptions{})
package storage
