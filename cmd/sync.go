package cmd

import (
	"context"
	"fmt"

	"pathsync/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncScope       scopeFlags
	syncDryRun      bool
	syncConcurrency int
)

// syncCmd runs one synchronization pass between the configured backends.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the local and remote backends",
	Long: `Reconcile every path under a folder so both backends end up with the same items.
When both sides hold different items for a path, the remote item wins.

Examples:
  # Whole store
  pathsync sync

  # One folder, without descending
  pathsync sync --scope docs/api --depth simple

  # Show what would change
  pathsync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncScope.register(syncCmd)
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Compute decisions without writing")
	syncCmd.Flags().IntVar(&syncConcurrency, "concurrency", 0, "Paths reconciled in parallel (default from SYNC_CONCURRENCY)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	depth, scope, err := syncScope.resolve(cmd, cfg)
	if err != nil {
		return err
	}

	concurrency := cfg.Sync.Concurrency
	if cmd.Flags().Changed("concurrency") {
		concurrency = syncConcurrency
	}

	local, remote, err := openSides(ctx, cfg)
	if err != nil {
		return err
	}

	db, err := reconcile.New(local, remote,
		reconcile.WithLogger(l),
		reconcile.WithConcurrency(concurrency),
		reconcile.WithDryRun(syncDryRun),
	)
	if err != nil {
		return err
	}

	l.Info("Starting sync",
		zap.String("local", cfg.Sync.Local),
		zap.String("remote", cfg.Sync.Remote),
		zap.String("scope", scope.String()),
		zap.Stringer("depth", depth),
	)

	report, err := db.SyncFolder(ctx, depth, scope)
	printSyncReport(l, report)
	if err != nil {
		return fmt.Errorf("sync aborted: %w", err)
	}

	if report.DryRun {
		l.Info("Dry-run mode: No changes were made.")
	}
	return nil
}

// printSyncReport logs the summary and a sample of the writing actions.
func printSyncReport(l *zap.Logger, report *reconcile.Report) {
	s := report.Summary

	l.Info("Sync report",
		zap.Int("total", s.Total),
		zap.Int("unchanged", s.Unchanged),
		zap.Int("pushed_remote", s.PushedRemote),
		zap.Int("pulled_local", s.PulledLocal),
		zap.Int("overwritten_local", s.OverwrittenLocal),
		zap.Int("vanished", s.Vanished),
		zap.Bool("complete", report.Complete),
	)

	const maxShow = 10
	shown := 0
	for _, action := range report.Actions {
		if !action.Type.Writes() {
			continue
		}
		if shown == maxShow {
			l.Info("Additional actions not shown", zap.Int("count", s.Writes()-maxShow))
			break
		}
		l.Info("Action",
			zap.String("type", string(action.Type)),
			zap.String("path", action.Path.String()),
			zap.String("reason", action.Reason),
		)
		shown++
	}
}
