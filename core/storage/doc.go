// Package storage wraps the MinIO Go client for S3 compatible object stores.
//
// The Client interface keeps only the calls the object store backend needs, so tests
// can substitute core/storage/mocks. NewClient builds a real client with bounded
// dial, TLS and response header timeouts; operation deadlines come from the context.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket); err != nil {
//	    return err
//	}
package storage
