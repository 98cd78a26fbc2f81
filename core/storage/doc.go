// Package storage provides the object storage client used to publish
// comparison reports.
//
// It wraps the MinIO Go client behind a small Client interface so both AWS S3
// and self-hosted MinIO can receive the CSV report of a run, and so uploads
// can be mocked in tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	exists, err := client.BucketExists(ctx, cfg.Storage.Bucket)
package storage
