// Package backend defines the storage contract the reconcile engine synchronizes against.
//
// A Backend is an asynchronous key/value store addressed by path.FilePath. Every call
// takes a context and may fail; a failure is always surfaced as an error and never as
// an absent entry.
//
// # Implementations
//
//   - backend/memory: in-process map guarded by a RWMutex (reference implementation).
//   - backend/sqlstore: one row per entry in a gorm managed table.
//   - backend/objectstore: one object per entry in an S3 compatible bucket.
//   - backend/httpstore: client for the endpoints served by feature/store.
//
// backend/backendtest holds the behavioral suite every implementation runs.
//
// # Usage
//
//	store := memory.New[string]()
//	_, _, err := backend.Insert(ctx, store, p, "value")
//	item, found, err := store.Get(ctx, p)
//	entries, err := store.List(ctx, path.Recursive, path.Root())
package backend
