package cmd

import (
	"context"
	"fmt"

	"pathsync/core/config"
	"pathsync/core/reconcile"

	"github.com/spf13/cobra"
)

var (
	listScope scopeFlags
	listSide  string
)

// listCmd prints the entries of one backend.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries of one backend",
	Long: `Print every path and item of the local or remote backend within a folder.

Examples:
  pathsync list --side remote --scope docs --depth recursive`,
	RunE: runList,
}

func init() {
	listScope.register(listCmd)
	listCmd.Flags().StringVar(&listSide, "side", string(reconcile.SideLocal), "Backend to list: local or remote")

	RootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	depth, scope, err := listScope.resolve(cmd, cfg)
	if err != nil {
		return err
	}

	var kind string
	switch reconcile.Side(listSide) {
	case reconcile.SideLocal:
		kind = cfg.Sync.Local
	case reconcile.SideRemote:
		kind = cfg.Sync.Remote
	default:
		return fmt.Errorf("unknown side %q", listSide)
	}

	b, err := config.OpenBackend(ctx, kind, cfg, listSide)
	if err != nil {
		return err
	}

	entries, err := b.List(ctx, depth, scope)
	if err != nil {
		return fmt.Errorf("failed to list %s backend: %w", listSide, err)
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		fmt.Fprintf(out, "%s\t%s\n", e.Path, e.Item)
	}
	return nil
}
