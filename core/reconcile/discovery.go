package reconcile

import (
	"context"

	"pathsync/core/backend"
	"pathsync/core/path"

	mapset "github.com/deckarep/golang-set/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// discover lists both sides and returns the union of their paths, ordered by path.
// The two List calls overlap only when the engine runs with concurrency above one.
func (s *SyncDb[T]) discover(ctx context.Context, depth path.Depth, scope path.FolderPath) ([]path.FilePath, error) {
	var localEntries, remoteEntries []backend.Entry[T]

	listLocal := func(ctx context.Context) error {
		var err error
		localEntries, err = s.local.List(ctx, depth, scope)
		if err != nil {
			return &SyncError{Op: "list", Side: SideLocal, Scope: scope, Err: err}
		}
		return nil
	}
	listRemote := func(ctx context.Context) error {
		var err error
		remoteEntries, err = s.remote.List(ctx, depth, scope)
		if err != nil {
			return &SyncError{Op: "list", Side: SideRemote, Scope: scope, Err: err}
		}
		return nil
	}

	if s.concurrency <= 1 {
		if err := listLocal(ctx); err != nil {
			return nil, err
		}
		if err := listRemote(ctx); err != nil {
			return nil, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return listLocal(gctx) })
		g.Go(func() error { return listRemote(gctx) })
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	seen := mapset.NewThreadUnsafeSetWithSize[string](len(localEntries) + len(remoteEntries))
	candidates := make([]backend.Entry[T], 0, len(localEntries)+len(remoteEntries))
	for _, side := range [][]backend.Entry[T]{localEntries, remoteEntries} {
		for _, e := range side {
			if !path.InScope(depth, scope, e.Path.Folder()) {
				s.logger.Warn("Ignoring listed entry outside scope",
					zap.String("path", e.Path.String()),
					zap.String("scope", scope.String()),
					zap.Stringer("depth", depth),
				)
				continue
			}
			if seen.Add(e.Path.Key()) {
				candidates = append(candidates, e)
			}
		}
	}

	backend.SortEntries(candidates)
	return backend.Paths(candidates), nil
}
