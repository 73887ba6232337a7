package cmd

import (
	"fmt"
	"os"

	"pathsync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the pathsync command; sync, list and serve register under it.
var RootCmd = &cobra.Command{
	Use:   "pathsync",
	Short: "Two-way path keyed store synchronization",
	Long: `pathsync reconciles a local and a remote store of path keyed items.
Backends can be in memory, SQL (sqlite, mysql), S3/MinIO, or another pathsync server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs RootCmd and exits with status 1 on failure.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	// The configured logger may be what failed, so errors go to a fixed console logger.
	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("pathsync failed", zap.String("command", commandName()), zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}

// commandName returns the subcommand named on the command line, if any.
func commandName() string {
	if cmd, _, err := RootCmd.Find(os.Args[1:]); err == nil && cmd != RootCmd {
		return cmd.Name()
	}
	return RootCmd.Name()
}
