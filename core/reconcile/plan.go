package reconcile

import (
	"context"
	"errors"

	"pathsync/core/path"

	"go.uber.org/zap"
)

// Plan computes the decisions of a SyncFolder pass without writing anything.
func (s *SyncDb[T]) Plan(ctx context.Context, depth path.Depth, scope path.FolderPath) (*Plan, error) {
	candidates, err := s.discover(ctx, depth, scope)
	if err != nil {
		return nil, err
	}

	report := &Report{DryRun: true}
	if err := s.resolveAll(ctx, candidates, false, report); err != nil {
		return nil, err
	}

	return &Plan{
		Depth:   depth,
		Scope:   scope,
		Actions: report.Actions,
		Summary: report.Summary,
	}, nil
}

// ApplyPlan reconciles every path listed in plan.
//
// Each path is read again from both sides before writing, so the applied decision
// may differ from the planned one when a backend changed in between.
func (s *SyncDb[T]) ApplyPlan(ctx context.Context, plan *Plan) (*Report, error) {
	report := &Report{DryRun: s.dryRun}
	if plan == nil {
		return report, errors.New("reconcile: nil plan")
	}

	paths := make([]path.FilePath, 0, len(plan.Actions))
	for _, a := range plan.Actions {
		paths = append(paths, a.Path)
	}

	err := s.resolveAll(ctx, paths, !s.dryRun, report)
	if err == nil {
		s.logger.Debug("Plan applied",
			zap.Int("planned_writes", plan.Summary.Writes()),
			zap.Int("applied_writes", report.Summary.Writes()),
		)
	}
	s.logPass(plan.Scope, report, err)
	return report, err
}
