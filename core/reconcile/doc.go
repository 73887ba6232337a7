// Package reconcile synchronizes two backends ("local" and "remote") addressed by
// hierarchical paths.
//
// A pass runs in two phases:
//
//  1. Discovery: both sides are listed for the requested scope and depth and the union
//     of their paths becomes the candidate set. The two listings overlap only when
//     WithConcurrency is above one.
//  2. Resolution: every candidate is reconciled on its own with fresh reads from both
//     sides, so items changed after discovery are still resolved against current data.
//
// # Resolution policy
//
//   - equal on both sides: nothing to do.
//   - present on both sides and different: remote overwrites local.
//   - only local: pushed to remote.
//   - only remote: pulled to local.
//   - on neither side (deleted after discovery): nothing is written.
//
// There are no tombstones: a deletion on one side is undone by the next pass.
//
// # Failures
//
// The first backend error aborts the pass. Writes already applied stay applied; the
// returned Report lists them and has Complete set to false. The error is a *SyncError
// that unwraps to the backend's own error.
//
// A context canceled between two paths aborts the pass the same way, but the error is
// the bare ctx.Err() (context.Canceled or context.DeadlineExceeded); no backend call failed.
//
// With the default concurrency of one, no two backend calls of a pass overlap, so
// backends that are not safe for concurrent use can be synchronized.
//
// # Usage
//
//	db, err := reconcile.New[string](local, remote,
//	    reconcile.WithLogger(log),
//	    reconcile.WithConcurrency(4),
//	)
//	report, err := db.SyncFolder(ctx, path.Recursive, path.Root())
//
//	// Preview first, then apply with fresh reads
//	plan, err := db.Plan(ctx, path.Recursive, path.NewFolderPath("docs"))
//	report, err = db.ApplyPlan(ctx, plan)
package reconcile
