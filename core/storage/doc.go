// Package storage provides read access to an object storage bucket holding
// staged record files.
//
// It wraps the MinIO Go client behind a small interface covering the
// operations the staging loader needs, which keeps unit tests off a live
// endpoint (mocked in core/storage/mocks). Both AWS S3 and self-hosted
// MinIO instances work.
//
// # Operations
//
//   - BucketExists: Verifies access to the target bucket.
//   - GetObject: Retrieves content as a stream.
//   - ListObjects: Lists objects in a bucket (supports prefix/recursive).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "staged-records")
package storage
