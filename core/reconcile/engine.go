package reconcile

import (
	"context"
	"slices"
	"sync"

	"pathsync/core/backend"
	"pathsync/core/path"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// SyncDb reconciles a local and a remote backend.
// It keeps no state between passes besides the two backends.
type SyncDb[T comparable] struct {
	local  backend.Backend[T]
	remote backend.Backend[T]

	logger      *zap.Logger
	concurrency int
	dryRun      bool
}

// New creates a SyncDb over the given backends.
func New[T comparable](local, remote backend.Backend[T], opts ...Option) (*SyncDb[T], error) {
	if local == nil || remote == nil {
		return nil, ErrNilBackend
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &SyncDb[T]{
		local:       local,
		remote:      remote,
		logger:      o.logger,
		concurrency: o.concurrency,
		dryRun:      o.dryRun,
	}, nil
}

// Local returns the local backend.
func (s *SyncDb[T]) Local() backend.Backend[T] {
	return s.local
}

// Remote returns the remote backend.
func (s *SyncDb[T]) Remote() backend.Backend[T] {
	return s.remote
}

// SyncFolder reconciles every path present on either side within scope and depth.
//
// On failure the partial report is returned together with the error.
func (s *SyncDb[T]) SyncFolder(ctx context.Context, depth path.Depth, scope path.FolderPath) (*Report, error) {
	report := &Report{DryRun: s.dryRun}

	candidates, err := s.discover(ctx, depth, scope)
	if err != nil {
		s.logger.Error("Sync discovery failed", zap.String("scope", scope.String()), zap.Error(err))
		return report, err
	}

	s.logger.Debug("Sync discovery finished",
		zap.String("scope", scope.String()),
		zap.Stringer("depth", depth),
		zap.Int("candidates", len(candidates)),
	)

	err = s.resolveAll(ctx, candidates, !s.dryRun, report)
	s.logPass(scope, report, err)
	return report, err
}

// SyncFile reconciles a single path with fresh reads from both sides.
func (s *SyncDb[T]) SyncFile(ctx context.Context, p path.FilePath) (Action, error) {
	return s.syncFile(ctx, p, !s.dryRun)
}

func (s *SyncDb[T]) syncFile(ctx context.Context, p path.FilePath, write bool) (Action, error) {
	localItem, localFound, err := s.local.Get(ctx, p)
	if err != nil {
		return Action{}, &SyncError{Op: "get", Side: SideLocal, Path: p, Err: err}
	}

	remoteItem, remoteFound, err := s.remote.Get(ctx, p)
	if err != nil {
		return Action{}, &SyncError{Op: "get", Side: SideRemote, Path: p, Err: err}
	}

	action := decide(p, localItem, localFound, remoteItem, remoteFound)
	if !write || !action.Type.Writes() {
		return action, nil
	}

	switch action.Type {
	case ActionOverwriteLocal, ActionPullLocal:
		if _, _, err := s.local.Set(ctx, p, &remoteItem); err != nil {
			return Action{}, &SyncError{Op: "set", Side: SideLocal, Path: p, Err: err}
		}
	case ActionPushRemote:
		if _, _, err := s.remote.Set(ctx, p, &localItem); err != nil {
			return Action{}, &SyncError{Op: "set", Side: SideRemote, Path: p, Err: err}
		}
	}

	s.logger.Debug("Applied sync action",
		zap.String("path", p.String()),
		zap.String("action", string(action.Type)),
	)
	return action, nil
}

// decide applies the resolution policy. Remote wins when both sides differ.
func decide[T comparable](p path.FilePath, local T, localFound bool, remote T, remoteFound bool) Action {
	switch {
	case localFound && remoteFound && local == remote:
		return Action{Type: ActionNone, Path: p, Reason: "equal on both sides"}
	case localFound && remoteFound:
		return Action{Type: ActionOverwriteLocal, Path: p, Reason: "differs; remote wins"}
	case localFound:
		return Action{Type: ActionPushRemote, Path: p, Reason: "missing in remote"}
	case remoteFound:
		return Action{Type: ActionPullLocal, Path: p, Reason: "missing in local"}
	default:
		return Action{Type: ActionVanished, Path: p, Reason: "missing on both sides"}
	}
}

// resolveAll runs syncFile over paths and records every completed action in report.
// It stops at the first error; Complete is set only when every path was resolved.
func (s *SyncDb[T]) resolveAll(ctx context.Context, paths []path.FilePath, write bool, report *Report) error {
	defer sortActions(report)

	if s.concurrency <= 1 || len(paths) <= 1 {
		for _, p := range paths {
			if err := ctx.Err(); err != nil {
				return err
			}
			action, err := s.syncFile(ctx, p, write)
			if err != nil {
				return err
			}
			report.record(action)
		}
		report.Complete = true
		return nil
	}

	var mu sync.Mutex
	workers := pool.New().
		WithMaxGoroutines(s.concurrency).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()

	for _, p := range paths {
		workers.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			action, err := s.syncFile(ctx, p, write)
			if err != nil {
				return err
			}
			mu.Lock()
			report.record(action)
			mu.Unlock()
			return nil
		})
	}

	if err := workers.Wait(); err != nil {
		return err
	}
	report.Complete = true
	return nil
}

func sortActions(report *Report) {
	slices.SortFunc(report.Actions, func(a, b Action) int {
		return a.Path.Compare(b.Path)
	})
}

func (s *SyncDb[T]) logPass(scope path.FolderPath, report *Report, err error) {
	fields := []zap.Field{
		zap.String("scope", scope.String()),
		zap.Int("total", report.Summary.Total),
		zap.Int("unchanged", report.Summary.Unchanged),
		zap.Int("pushed_remote", report.Summary.PushedRemote),
		zap.Int("pulled_local", report.Summary.PulledLocal),
		zap.Int("overwritten_local", report.Summary.OverwrittenLocal),
		zap.Int("vanished", report.Summary.Vanished),
		zap.Bool("dry_run", report.DryRun),
	}
	if err != nil {
		s.logger.Error("Sync pass aborted", append(fields, zap.Error(err))...)
		return
	}
	s.logger.Info("Sync pass finished", fields...)
}
