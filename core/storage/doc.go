// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client, which speaks to both AWS S3 and self-hosted MinIO.
// The sync uses it for two things: uploading one JSON report per run, and reading a
// receivables snapshot when NetSuite returns no rows.
//
// # Client Interface
//
// The Client interface keeps the MinIO dependency out of callers and lets tests use
// core/storage/mocks.
//
//   - BucketExists: Verifies access to the target bucket.
//   - PutObject: Uploads content (with size and options).
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
